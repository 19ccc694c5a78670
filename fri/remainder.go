package fri

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	gl "github.com/proofsys/goldilocks-fri/goldilocks"
	"github.com/proofsys/goldilocks-fri/merkle"
)

// readRemainder reads the final revealed layer, binds it to the transcript,
// draws the random evaluation point and checks the degree bound. Binding
// before the draw means the prover committed to the remainder before
// learning where it would be probed.
func (v *FriVerifier) readRemainder(channel VerifierChannel, coin PublicCoin) ([]goldilocks.Element, error) {
	remainder, err := channel.ReadRemainder()
	if err != nil {
		return nil, err
	}
	want := v.options.RemainderSize(v.domainSize)
	if uint64(len(remainder)) != want {
		return nil, fmt.Errorf("%w: remainder has %d elements, expected %d", ErrInvalidInput, len(remainder), want)
	}

	coin.Reseed(merkle.LeafBytes(remainder))
	tau, err := coin.DrawElement()
	if err != nil {
		return nil, fmt.Errorf("drawing remainder evaluation point: %w", err)
	}

	maxDegree := uint64(0)
	if want > v.options.BlowupFactor {
		maxDegree = want/v.options.BlowupFactor - 1
	}
	if err := verifyRemainderDegree(remainder, maxDegree, tau); err != nil {
		return nil, err
	}
	return remainder, nil
}

// verifyRemainderDegree checks that the remainder codeword is the evaluation
// of a polynomial of degree <= maxDegree over the two-adic subgroup of
// matching size: every coefficient beyond the bound must vanish, and a
// Horner evaluation of the truncated coefficients must agree with a direct
// Lagrange evaluation of the codeword at the transcript-drawn point.
func verifyRemainderDegree(remainder []goldilocks.Element, maxDegree uint64, tau goldilocks.Element) error {
	n := uint64(len(remainder))
	logN, err := gl.Log2Exact(n)
	if err != nil {
		return fmt.Errorf("%w: remainder length %d is not a power of two", ErrInvalidInput, n)
	}

	coeffs, err := gl.InterpolateOnSubgroup(remainder)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i := maxDegree + 1; i < n; i++ {
		if !coeffs[i].IsZero() {
			return fmt.Errorf("%w: coefficient %d is nonzero with degree bound %d", ErrRemainderDegreeViolation, i, maxDegree)
		}
	}

	if n == 1 {
		// A single revealed value is a constant; nothing left to probe.
		return nil
	}

	horner := gl.EvalPoly(coeffs[:maxDegree+1], tau)
	domain, err := gl.TwoAdicSubgroup(logN)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	lagrange, err := gl.EvalLagrange(domain, remainder, tau)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !horner.Equal(&lagrange) {
		return fmt.Errorf("%w: evaluations at the random point disagree", ErrRemainderDegreeViolation)
	}
	return nil
}
