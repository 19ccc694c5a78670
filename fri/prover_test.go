package fri

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"

	"github.com/proofsys/goldilocks-fri/challenger"
	gl "github.com/proofsys/goldilocks-fri/goldilocks"
	"github.com/proofsys/goldilocks-fri/merkle"
)

// testCoinSeed is shared by the test prover and the verifiers built against
// its proofs, so both sides replay the same transcript.
var testCoinSeed = []byte("goldilocks-fri test transcript")

func newTestCoin() *challenger.Coin {
	return challenger.New(testCoinSeed)
}

// testProof is an honestly generated proof over a random polynomial, with
// openings materialized for every coset so tests can query any position.
type testProof struct {
	opts      FriOptions
	roots     []merkle.Digest
	queries   []map[uint64]QueryProof
	remainder []goldilocks.Element
	codeword  []goldilocks.Element
}

func (p *testProof) channel() *MemChannel {
	return NewMemChannel(p.roots, p.queries, p.remainder)
}

// buildTestProof commits to a random polynomial of exactly maxPolyDegree and
// runs the folding protocol over it: per layer, Merkle-commit the value
// groups, absorb the root, draw the challenge, then interpolate every coset
// at the challenge to produce the next codeword. The last codeword is the
// remainder.
func buildTestProof(t *testing.T, opts FriOptions, maxPolyDegree uint64, seed int64) *testProof {
	t.Helper()

	degreeBound, err := gl.NextPowerOfTwo(maxPolyDegree + 1)
	require.NoError(t, err)
	domainSize := degreeBound * opts.BlowupFactor
	domainBits, err := gl.Log2Exact(domainSize)
	require.NoError(t, err)
	omega, err := gl.PrimitiveRootOfUnity(domainBits)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(seed))
	coeffs := make([]goldilocks.Element, maxPolyDegree+1)
	for i := range coeffs {
		coeffs[i].SetUint64(rng.Uint64())
	}
	coeffs[maxPolyDegree].SetUint64(rng.Uint64()%1000 + 1)

	codeword := make([]goldilocks.Element, domainSize)
	x := gl.MULTIPLICATIVE_GROUP_GENERATOR
	for i := range codeword {
		codeword[i] = gl.EvalPoly(coeffs, x)
		x.Mul(&x, &omega)
	}

	coin := newTestCoin()
	f := opts.FoldingFactor
	numLayers := opts.NumFriLayers(domainSize)
	roots := make([]merkle.Digest, 0, numLayers)
	queries := make([]map[uint64]QueryProof, 0, numLayers)

	cw := codeword
	layerOmega := omega
	for layer := 0; layer < numLayers; layer++ {
		modulus := uint64(len(cw)) / f
		groups := make([][]goldilocks.Element, modulus)
		leaves := make([][]byte, modulus)
		for j := uint64(0); j < modulus; j++ {
			group := make([]goldilocks.Element, f)
			for k := uint64(0); k < f; k++ {
				group[k] = cw[j+k*modulus]
			}
			groups[j] = group
			leaves[j] = merkle.LeafBytes(group)
		}

		root, err := merkle.Commit(leaves)
		require.NoError(t, err)
		roots = append(roots, root)

		openings := make(map[uint64]QueryProof, modulus)
		for j := uint64(0); j < modulus; j++ {
			path, err := merkle.Prove(leaves, j)
			require.NoError(t, err)
			openings[j] = QueryProof{Values: groups[j], Path: path}
		}
		queries = append(queries, openings)

		coin.Reseed(root[:])
		alpha, err := coin.DrawElement()
		require.NoError(t, err)

		wsub := gl.ExpUint64(layerOmega, modulus)
		next := make([]goldilocks.Element, modulus)
		for j := uint64(0); j < modulus; j++ {
			xs := make([]goldilocks.Element, f)
			xs[0] = gl.ExpUint64(layerOmega, j)
			xs[0].Mul(&xs[0], &gl.MULTIPLICATIVE_GROUP_GENERATOR)
			for k := 1; k < len(xs); k++ {
				xs[k].Mul(&xs[k-1], &wsub)
			}
			folded, err := gl.EvalLagrange(xs, groups[j], alpha)
			require.NoError(t, err)
			next[j] = folded
		}
		cw = next
		layerOmega = gl.ExpUint64(layerOmega, f)
	}

	return &testProof{
		opts:      opts,
		roots:     roots,
		queries:   queries,
		remainder: cw,
		codeword:  codeword,
	}
}

// evaluationsAt picks the claimed layer-0 evaluations for the given
// positions out of the honest codeword.
func (p *testProof) evaluationsAt(positions []uint64) []goldilocks.Element {
	evals := make([]goldilocks.Element, len(positions))
	for i, pos := range positions {
		evals[i] = p.codeword[pos]
	}
	return evals
}
