package codec

import (
	"github.com/arloliu/blendpack/bitpack"
	"github.com/arloliu/blendpack/quant"
)

// encodeUnitCube writes one vertex using plain fixed-point quantization:
// the first MaxBoneCount-1 weights are each stored at WeightBaseBitCount
// bits in the order given (the reducer already emits canonical descending
// order, and the layout must reproduce the caller's order bit-exactly), the
// remaining weight is inferred by the consumer from the sum-to-one
// invariant, and the tuple index follows verbatim.
func encodeUnitCube(record []byte, p *Params, pairs []Influence, tupleIndex uint32) {
	width := p.WeightBaseBitCount
	for i := 0; i < p.MaxBoneCount-1; i++ {
		bitpack.Insert(record, quant.Quantize(pairs[i].Weight, width), i*width, width)
	}

	bitpack.Insert(record, tupleIndex, (p.MaxBoneCount-1)*width, p.TupleIndexBitCount)
}
