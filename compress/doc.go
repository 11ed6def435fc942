// Package compress provides the compression codecs applied to blendpack
// container sections.
//
// Compression is a second stage on top of the bit-packed encoding: the tuple
// table and the record payload are already dense, but both still carry
// exploitable redundancy (repeated bone indices, clustered weight codes), so
// a container may run each section through a general-purpose codec.
//
// Supported algorithms:
//   - None: no compression, zero overhead
//   - Zstd: best ratio, for archival and network transfer
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, for load-time critical consumers
//
// All codecs are safe for concurrent use and pool their internal encoder and
// decoder state.
package compress
