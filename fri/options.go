package fri

import (
	"fmt"

	gl "github.com/proofsys/goldilocks-fri/goldilocks"
)

// FriOptions carries the protocol parameters shared by prover and verifier.
// It is derived once from the global proof configuration and immutable
// afterwards.
type FriOptions struct {
	// FoldingFactor is the number of evaluations merged into one at each
	// layer. Must be a power of two >= 2.
	FoldingFactor uint64
	// MaxRemainderSize is the domain size below which folding stops and the
	// layer is revealed in the clear.
	MaxRemainderSize uint64
	// BlowupFactor is the ratio of evaluation domain size to polynomial
	// degree bound.
	BlowupFactor uint64
}

// Validate checks the structural invariants every other operation relies on.
func (o FriOptions) Validate() error {
	if o.FoldingFactor < 2 {
		return fmt.Errorf("%w: folding factor must be at least 2, got %d", ErrInvalidInput, o.FoldingFactor)
	}
	if _, err := gl.Log2Exact(o.FoldingFactor); err != nil {
		return fmt.Errorf("%w: folding factor %d is not a power of two", ErrInvalidInput, o.FoldingFactor)
	}
	if o.MaxRemainderSize == 0 {
		return fmt.Errorf("%w: max remainder size must be positive", ErrInvalidInput)
	}
	if _, err := gl.Log2Exact(o.MaxRemainderSize); err != nil {
		return fmt.Errorf("%w: max remainder size %d is not a power of two", ErrInvalidInput, o.MaxRemainderSize)
	}
	if o.BlowupFactor == 0 {
		return fmt.Errorf("%w: blowup factor must be positive", ErrInvalidInput)
	}
	if _, err := gl.Log2Exact(o.BlowupFactor); err != nil {
		return fmt.Errorf("%w: blowup factor %d is not a power of two", ErrInvalidInput, o.BlowupFactor)
	}
	return nil
}

// NumFriLayers returns how many committed folding layers a proof over the
// given domain has: the domain is divided by the folding factor until it no
// longer exceeds MaxRemainderSize.
func (o FriOptions) NumFriLayers(domainSize uint64) int {
	n := 0
	for domainSize > o.MaxRemainderSize {
		domainSize /= o.FoldingFactor
		n++
	}
	return n
}

// RemainderSize returns the domain size of the final, uncommitted layer.
func (o FriOptions) RemainderSize(domainSize uint64) uint64 {
	for domainSize > o.MaxRemainderSize {
		domainSize /= o.FoldingFactor
	}
	return domainSize
}
