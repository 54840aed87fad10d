package money

import (
	"errors"
	"math"
)

// ErrNonDeterministicFP is returned by RunDeterminismSelfTest when the
// host's floating-point unit does not reproduce identical bit patterns
// across repeated runs of the same summation. This is fatal at process
// startup: it means the SIMD SMA fast path (internal/indicators) cannot
// be trusted to match the scalar Decimal path bit-for-bit.
var ErrNonDeterministicFP = errors.New("money: floating point determinism self-test failed")

// selfTestCorpus mirrors the fixed corpus used by the original engine's
// validate_fp_determinism check: repeated addition of these five values
// must sum to exactly 1.5 on every iteration.
var selfTestCorpus = [...]float64{0.1, 0.2, 0.3, 0.4, 0.5}

// RunDeterminismSelfTest sums selfTestCorpus `iterations` times and
// verifies every run produces the identical IEEE-754 bit pattern. It
// does not merely compare with an epsilon: a platform that is
// internally inconsistent from run to run (denormal flushing, x87
// excess precision, a buggy FMA contraction) is exactly the failure
// mode this guards against, and only an exact bit comparison catches it.
func RunDeterminismSelfTest(iterations int) error {
	if iterations <= 0 {
		iterations = 10
	}
	var want uint64
	for i := 0; i < iterations; i++ {
		var sum float64
		for _, v := range selfTestCorpus {
			sum += v
		}
		if sum != 1.5 {
			return ErrNonDeterministicFP
		}
		bits := math.Float64bits(sum)
		if i == 0 {
			want = bits
			continue
		}
		if bits != want {
			return ErrNonDeterministicFP
		}
	}
	return nil
}
