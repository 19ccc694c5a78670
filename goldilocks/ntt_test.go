package goldilocks

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomElements(n int, seed int64) []goldilocks.Element {
	rng := rand.New(rand.NewSource(seed))
	out := make([]goldilocks.Element, n)
	for i := range out {
		out[i].SetUint64(rng.Uint64())
	}
	return out
}

func TestNTTMatchesHorner(t *testing.T) {
	coeffs := randomElements(16, 1)

	evals := make([]goldilocks.Element, len(coeffs))
	copy(evals, coeffs)
	require.NoError(t, NTT(evals))

	domain, err := TwoAdicSubgroup(4)
	require.NoError(t, err)
	for i := range domain {
		want := EvalPoly(coeffs, domain[i])
		assert.True(t, evals[i].Equal(&want), "evaluation mismatch at index %d", i)
	}
}

func TestInterpolateRoundTrip(t *testing.T) {
	coeffs := randomElements(32, 2)

	evals := make([]goldilocks.Element, len(coeffs))
	copy(evals, coeffs)
	require.NoError(t, NTT(evals))

	back, err := InterpolateOnSubgroup(evals)
	require.NoError(t, err)
	require.Len(t, back, len(coeffs))
	for i := range coeffs {
		assert.True(t, back[i].Equal(&coeffs[i]), "coefficient mismatch at index %d", i)
	}
}

func TestInterpolateRejectsNonPowerOfTwo(t *testing.T) {
	_, err := InterpolateOnSubgroup(make([]goldilocks.Element, 6))
	assert.ErrorIs(t, err, ErrNotAPowerOfTwo)
}

func TestEvalLagrangeAgreesWithHorner(t *testing.T) {
	coeffs := randomElements(8, 3)
	domain, err := TwoAdicSubgroup(3)
	require.NoError(t, err)

	evals := make([]goldilocks.Element, len(domain))
	for i := range domain {
		evals[i] = EvalPoly(coeffs, domain[i])
	}

	x := goldilocks.NewElement(987654321)
	got, err := EvalLagrange(domain, evals, x)
	require.NoError(t, err)
	want := EvalPoly(coeffs, x)
	assert.True(t, got.Equal(&want))
}

func TestEvalLagrangeAtNode(t *testing.T) {
	domain, err := TwoAdicSubgroup(2)
	require.NoError(t, err)
	ys := randomElements(4, 4)

	got, err := EvalLagrange(domain, ys, domain[2])
	require.NoError(t, err)
	assert.True(t, got.Equal(&ys[2]))
}

func TestEvalLagrangeRejectsBadInput(t *testing.T) {
	_, err := EvalLagrange(nil, nil, goldilocks.One())
	assert.ErrorIs(t, err, ErrInvalidInput)

	xs := []goldilocks.Element{goldilocks.NewElement(5), goldilocks.NewElement(5)}
	ys := randomElements(2, 5)
	_, err = EvalLagrange(xs, ys, goldilocks.NewElement(9))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
