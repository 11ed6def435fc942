package compress

// ZstdCompressor provides Zstandard compression for container sections where
// ratio matters more than speed: archival, cold assets, network transfer.
//
// Two implementations exist behind build tags: a cgo binding with the best
// throughput, and a pure Go fallback so the library stays usable without cgo.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
