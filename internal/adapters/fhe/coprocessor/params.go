package coprocessor

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

const (
	limbBits = 16
	limbMask = 1<<limbBits - 1
)

// 65537 is prime and congruent to 1 mod 2N, so every slot is usable. A
// 32-bit value does not fit below it and is carried as two 16-bit limbs.
var parametersLiteral = bgv.ParametersLiteral{
	LogN:             12,
	LogQ:             []int{54},
	LogP:             []int{55},
	PlaintextModulus: 65537,
}

func newParameters() (bgv.Parameters, error) {
	params, err := bgv.NewParametersFromLiteral(parametersLiteral)
	if err != nil {
		return bgv.Parameters{}, fmt.Errorf("build bgv parameters: %w", err)
	}

	return params, nil
}

func splitLimbs(value uint32, slots int) []uint64 {
	values := make([]uint64, slots)
	values[0] = uint64(value & limbMask)
	values[1] = uint64(value >> limbBits)
	return values
}

func joinLimbs(values []uint64) (uint32, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("decoded plaintext has %d slots", len(values))
	}

	lo, hi := values[0], values[1]
	if lo > limbMask || hi > limbMask {
		return 0, fmt.Errorf("decoded limbs out of range: %d, %d", lo, hi)
	}

	return uint32(hi<<limbBits | lo), nil
}
