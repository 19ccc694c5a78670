package fri

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"golang.org/x/sync/errgroup"

	gl "github.com/proofsys/goldilocks-fri/goldilocks"
	"github.com/proofsys/goldilocks-fri/logger"
	"github.com/proofsys/goldilocks-fri/merkle"
)

// queryState is the accumulator carried across layers for one query: its
// position in the current layer's domain and the evaluation expected there
// from the previous layer's fold (the claimed evaluation at layer 0).
type queryState struct {
	position uint64
	value    goldilocks.Element
}

// Verify checks the committed codeword against the claimed evaluations at
// the given query positions: every folding layer is walked with Merkle
// authentication and cross-layer consistency checks, and the remainder is
// bound to the transcript and held to its degree bound. The first failure
// rejects the proof.
func (v *FriVerifier) Verify(channel VerifierChannel, coin PublicCoin, positions []uint64, evaluations []goldilocks.Element) error {
	errs := v.run(channel, coin, positions, evaluations, true)
	if len(errs) > 0 {
		return errs[0]
	}
	log := logger.Logger()
	log.Info().Int("numQueries", len(positions)).Msg("fri proof accepted")
	return nil
}

// VerifyDiagnostics runs the same checks as Verify but does not stop at the
// first failure: every query and every layer that can still be checked is,
// and all failures are returned with layer and position context. An empty
// result means the proof is accepted.
func (v *FriVerifier) VerifyDiagnostics(channel VerifierChannel, coin PublicCoin, positions []uint64, evaluations []goldilocks.Element) []error {
	return v.run(channel, coin, positions, evaluations, false)
}

func (v *FriVerifier) run(channel VerifierChannel, coin PublicCoin, positions []uint64, evaluations []goldilocks.Element, failFast bool) []error {
	states, err := v.initialStates(positions, evaluations)
	if err != nil {
		return []error{err}
	}

	numLayers := v.options.NumFriLayers(v.domainSize)
	if len(v.layerCommitments) != numLayers {
		return []error{fmt.Errorf("%w: proof has %d layer commitments, protocol needs %d",
			ErrInvalidInput, len(v.layerCommitments), numLayers)}
	}

	var errs []error

	// Remainder first: read it, bind it to the transcript and check its
	// degree bound, so a malformed final layer is rejected regardless of
	// which positions were sampled.
	remainder, err := v.readRemainder(channel, coin)
	if err != nil {
		if failFast {
			return []error{err}
		}
		errs = append(errs, err)
	}

	omega := v.domainGenerator
	domain := v.domainSize
	for layer := 0; layer < numLayers; layer++ {
		modulus := domain / v.options.FoldingFactor

		srcPositions := make([]uint64, len(states))
		for i := range states {
			srcPositions[i] = states[i].position
		}
		folded := FoldPositions(srcPositions, modulus)

		proofs, err := channel.ReadLayerQueries(layer, folded)
		if err != nil {
			if failFast {
				return []error{err}
			}
			errs = append(errs, err)
			break
		}

		next := make([]queryState, len(folded))
		ok := make([]bool, len(folded))
		layerErrs := v.verifyLayer(layer, folded, proofs, states, modulus, omega, next, ok, failFast)
		if len(layerErrs) > 0 {
			if failFast {
				return layerErrs[:1]
			}
			errs = append(errs, layerErrs...)
		}

		states = states[:0]
		for j := range next {
			if ok[j] {
				states = append(states, next[j])
			}
		}
		log := logger.Logger()
		log.Debug().
			Int("layer", layer).
			Int("numCosets", len(folded)).
			Int("numSurviving", len(states)).
			Msg("fri layer verified")
		domain = modulus
		omega = gl.ExpUint64(omega, v.options.FoldingFactor)
	}

	// Each surviving query's final folded evaluation must agree with the
	// value the remainder reveals for its coset.
	if remainder != nil {
		for i := range states {
			if states[i].position >= uint64(len(remainder)) {
				e := fmt.Errorf("%w: final position %d outside remainder of length %d",
					ErrInvalidInput, states[i].position, len(remainder))
				if failFast {
					return []error{e}
				}
				errs = append(errs, e)
				continue
			}
			if !remainder[states[i].position].Equal(&states[i].value) {
				e := fmt.Errorf("%w: query at final position %d", ErrRemainderMismatch, states[i].position)
				if failFast {
					return []error{e}
				}
				errs = append(errs, e)
			}
		}
	}

	return errs
}

func (v *FriVerifier) initialStates(positions []uint64, evaluations []goldilocks.Element) ([]queryState, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no query positions", ErrInvalidInput)
	}
	if len(evaluations) != len(positions) {
		return nil, fmt.Errorf("%w: %d positions but %d claimed evaluations",
			ErrInvalidInput, len(positions), len(evaluations))
	}
	states := make([]queryState, 0, len(positions))
outer:
	for i, p := range positions {
		if p >= v.domainSize {
			return nil, fmt.Errorf("%w: position %d outside domain of size %d", ErrInvalidInput, p, v.domainSize)
		}
		for j := range states {
			if states[j].position == p {
				if !states[j].value.Equal(&evaluations[i]) {
					return nil, fmt.Errorf("%w: conflicting evaluations claimed at position %d", ErrInvalidInput, p)
				}
				continue outer
			}
		}
		states = append(states, queryState{position: p, value: evaluations[i]})
	}
	return states, nil
}

func (v *FriVerifier) verifyLayer(layer int, folded []uint64, proofs []QueryProof, states []queryState,
	modulus uint64, omega goldilocks.Element, next []queryState, ok []bool, failFast bool) []error {

	if failFast {
		var eg errgroup.Group
		if v.numWorkers > 0 {
			eg.SetLimit(v.numWorkers)
		}
		for j := range folded {
			j := j
			eg.Go(func() error {
				st, err := v.verifyCoset(layer, folded[j], proofs[j], states, modulus, omega)
				if err != nil {
					return err
				}
				next[j] = st
				ok[j] = true
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return []error{err}
		}
		return nil
	}

	var errs []error
	for j := range folded {
		st, err := v.verifyCoset(layer, folded[j], proofs[j], states, modulus, omega)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		next[j] = st
		ok[j] = true
	}
	return errs
}

// verifyCoset authenticates one layer's opening at a folded position and
// folds its value group into the evaluation expected at the next layer.
func (v *FriVerifier) verifyCoset(layer int, foldedPos uint64, proof QueryProof, states []queryState,
	modulus uint64, omega goldilocks.Element) (queryState, error) {

	f := v.options.FoldingFactor
	if uint64(len(proof.Values)) != f {
		return queryState{}, fmt.Errorf("%w: layer %d position %d: opening has %d values, folding factor is %d",
			ErrInvalidInput, layer, foldedPos, len(proof.Values), f)
	}

	if !merkle.Verify(v.layerCommitments[layer], foldedPos, modulus, proof.Path) {
		return queryState{}, fmt.Errorf("%w: layer %d position %d", ErrMerkleAuthenticationFailed, layer, foldedPos)
	}
	if !proof.Path.MatchesValues(proof.Values) {
		return queryState{}, fmt.Errorf("%w: layer %d position %d", ErrLeafHashMismatch, layer, foldedPos)
	}

	// Cross-layer consistency: every query folding onto this coset must find
	// the evaluation carried from the previous layer inside the revealed
	// group. The group at leaf j lists positions {j + t*modulus}, so a query
	// at position p occupies slot p/modulus.
	for i := range states {
		if states[i].position%modulus != foldedPos {
			continue
		}
		slot := states[i].position / modulus
		if !proof.Values[slot].Equal(&states[i].value) {
			return queryState{}, fmt.Errorf("%w: layer %d position %d slot %d",
				ErrLayerInconsistency, layer, states[i].position, slot)
		}
	}

	// Fold: the group is the evaluation of the layer polynomial over the
	// coset {g * omega^j * wsub^t}; interpolate it and evaluate at this
	// layer's challenge.
	xs := v.cosetPoints(omega, foldedPos, modulus)
	value, err := gl.EvalLagrange(xs, proof.Values, v.layerAlphas[layer])
	if err != nil {
		return queryState{}, fmt.Errorf("layer %d position %d: %w", layer, foldedPos, err)
	}
	return queryState{position: foldedPos, value: value}, nil
}

// cosetPoints returns the x-coordinates of the value group at leaf
// foldedPos: g * omega^foldedPos * wsub^t for t in 0..FoldingFactor, where
// wsub = omega^modulus generates the order-FoldingFactor subgroup.
func (v *FriVerifier) cosetPoints(omega goldilocks.Element, foldedPos, modulus uint64) []goldilocks.Element {
	wsub := gl.ExpUint64(omega, modulus)
	start := gl.ExpUint64(omega, foldedPos)
	start.Mul(&start, &gl.MULTIPLICATIVE_GROUP_GENERATOR)
	xs := make([]goldilocks.Element, v.options.FoldingFactor)
	xs[0] = start
	for t := 1; t < len(xs); t++ {
		xs[t].Mul(&xs[t-1], &wsub)
	}
	return xs
}
