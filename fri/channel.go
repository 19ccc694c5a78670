package fri

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/proofsys/goldilocks-fri/merkle"
)

// QueryProof carries one layer's opening for a single folded position: the
// revealed value group (FoldingFactor elements, coset order) and its
// authentication path against that layer's commitment.
type QueryProof struct {
	Values []goldilocks.Element
	Path   merkle.Proof
}

// VerifierChannel supplies the verifier with the prover's commitments and
// query openings. Implementations own the proof data; the verifier treats
// the channel as a read-only oracle and never mutates what it reads.
// Byte-level proof deserialization is the implementation's concern.
type VerifierChannel interface {
	// ReadFriRoots returns the per-layer commitments in layer order.
	ReadFriRoots() []merkle.Digest
	// ReadLayerQueries returns one opening per requested folded position for
	// the given layer, in the order requested.
	ReadLayerQueries(layer int, positions []uint64) ([]QueryProof, error)
	// ReadRemainder returns the final layer's evaluations, revealed in the
	// clear.
	ReadRemainder() ([]goldilocks.Element, error)
}

// MemChannel is a VerifierChannel over fully materialized proof data, the
// constructor-time dependency injection the verifier core expects instead of
// fetching advice out of band.
type MemChannel struct {
	roots     []merkle.Digest
	queries   []map[uint64]QueryProof
	remainder []goldilocks.Element
}

// NewMemChannel builds a channel from per-layer roots, per-layer openings
// keyed by folded position, and the remainder codeword.
func NewMemChannel(roots []merkle.Digest, queries []map[uint64]QueryProof, remainder []goldilocks.Element) *MemChannel {
	return &MemChannel{roots: roots, queries: queries, remainder: remainder}
}

func (c *MemChannel) ReadFriRoots() []merkle.Digest {
	roots := make([]merkle.Digest, len(c.roots))
	copy(roots, c.roots)
	return roots
}

func (c *MemChannel) ReadLayerQueries(layer int, positions []uint64) ([]QueryProof, error) {
	if layer < 0 || layer >= len(c.queries) {
		return nil, fmt.Errorf("%w: proof has no layer %d", ErrInvalidInput, layer)
	}
	out := make([]QueryProof, len(positions))
	for i, pos := range positions {
		qp, ok := c.queries[layer][pos]
		if !ok {
			return nil, fmt.Errorf("%w: missing opening for layer %d position %d", ErrInvalidInput, layer, pos)
		}
		out[i] = qp
	}
	return out, nil
}

func (c *MemChannel) ReadRemainder() ([]goldilocks.Element, error) {
	if len(c.remainder) == 0 {
		return nil, fmt.Errorf("%w: proof has no remainder", ErrInvalidInput)
	}
	remainder := make([]goldilocks.Element, len(c.remainder))
	copy(remainder, c.remainder)
	return remainder, nil
}
