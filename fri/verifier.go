// Package fri verifies the FRI low-degree test: that a Merkle-committed
// codeword is the evaluation of a polynomial of bounded degree over a
// two-adic coset of the Goldilocks field. The verifier re-derives the
// prover's folding challenges from a public-coin transcript, walks every
// query through the folding layers checking Merkle membership and
// cross-layer consistency, and binds the final revealed layer to its degree
// bound.
package fri

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	gl "github.com/proofsys/goldilocks-fri/goldilocks"
	"github.com/proofsys/goldilocks-fri/logger"
	"github.com/proofsys/goldilocks-fri/merkle"
)

// PublicCoin is the Fiat-Shamir transcript challenges are drawn from. The
// collaborator must derive draws deterministically from the absorbed bytes.
type PublicCoin interface {
	Reseed(data []byte)
	DrawElement() (goldilocks.Element, error)
}

// FriVerifier holds the transcript-derived parameters for one FRI instance.
// It is immutable after construction and safe to share across the query
// verification workers.
type FriVerifier struct {
	maxPolyDegree    uint64
	domainSize       uint64
	domainGenerator  goldilocks.Element
	layerCommitments []merkle.Digest
	layerAlphas      []goldilocks.Element
	options          FriOptions
	numWorkers       int
}

// Option configures a FriVerifier.
type Option func(*FriVerifier)

// WithParallelism caps the number of concurrent coset verifications per
// layer. Zero or negative means one worker per coset.
func WithParallelism(n int) Option {
	return func(v *FriVerifier) {
		v.numWorkers = n
	}
}

// NewFriVerifier derives the verifier state from the proof configuration and
// the prover's layer commitments. For each commitment, in layer order, the
// coin is reseeded with the commitment bytes and one folding challenge is
// drawn; the sequence is strictly ordered, so the challenge for layer i
// depends on every commitment up to and including layer i. Reordering or
// skipping a commitment changes every subsequent challenge.
func NewFriVerifier(channel VerifierChannel, coin PublicCoin, options FriOptions, maxPolyDegree uint64, opts ...Option) (*FriVerifier, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	degreeBound, err := gl.NextPowerOfTwo(maxPolyDegree + 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	domainSize := degreeBound * options.BlowupFactor
	domainBits, err := gl.Log2Exact(domainSize)
	if err != nil {
		return nil, fmt.Errorf("%w: domain of size %d: %v", ErrDomainTooLarge, domainSize, err)
	}
	domainGenerator, err := gl.PrimitiveRootOfUnity(domainBits)
	if err != nil {
		return nil, fmt.Errorf("%w: domain of size %d: %v", ErrDomainTooLarge, domainSize, err)
	}

	commitments := channel.ReadFriRoots()
	alphas := make([]goldilocks.Element, len(commitments))
	for i := range commitments {
		coin.Reseed(commitments[i][:])
		alpha, err := coin.DrawElement()
		if err != nil {
			return nil, fmt.Errorf("drawing challenge for layer %d: %w", i, err)
		}
		alphas[i] = alpha
	}

	v := &FriVerifier{
		maxPolyDegree:    maxPolyDegree,
		domainSize:       domainSize,
		domainGenerator:  domainGenerator,
		layerCommitments: commitments,
		layerAlphas:      alphas,
		options:          options,
	}
	for _, opt := range opts {
		opt(v)
	}

	log := logger.Logger()
	log.Debug().
		Uint64("domainSize", domainSize).
		Int("numLayers", options.NumFriLayers(domainSize)).
		Int("numCommitments", len(commitments)).
		Msg("fri verifier constructed")
	return v, nil
}

// DomainSize returns the layer-0 evaluation domain size.
func (v *FriVerifier) DomainSize() uint64 {
	return v.domainSize
}

// DomainGenerator returns the generator of the layer-0 evaluation domain.
func (v *FriVerifier) DomainGenerator() goldilocks.Element {
	return v.domainGenerator
}

// MaxPolyDegree returns the degree bound being tested.
func (v *FriVerifier) MaxPolyDegree() uint64 {
	return v.maxPolyDegree
}

// NumLayers returns the number of committed folding layers.
func (v *FriVerifier) NumLayers() int {
	return v.options.NumFriLayers(v.domainSize)
}

// Options returns the protocol parameters.
func (v *FriVerifier) Options() FriOptions {
	return v.options
}

// LayerAlphas returns a copy of the per-layer folding challenges.
func (v *FriVerifier) LayerAlphas() []goldilocks.Element {
	alphas := make([]goldilocks.Element, len(v.layerAlphas))
	copy(alphas, v.layerAlphas)
	return alphas
}

// LayerCommitments returns a copy of the per-layer commitments.
func (v *FriVerifier) LayerCommitments() []merkle.Digest {
	commitments := make([]merkle.Digest, len(v.layerCommitments))
	copy(commitments, v.layerCommitments)
	return commitments
}
