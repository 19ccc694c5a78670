// Package challenger implements the verifier's public coin: a seed-based
// Fiat-Shamir transcript over Keccak-256. The prover's commitments are
// absorbed with Reseed and challenges come out of DrawElement; every draw is
// a deterministic function of everything absorbed before it.
package challenger

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrTranscript is returned when the coin cannot produce a canonical field
// element from its current state.
var ErrTranscript = errors.New("challenger: transcript cannot draw")

// maxDrawAttempts bounds rejection sampling. A draw misses the field with
// probability ~2^-32, so hitting this bound means the hash is broken.
const maxDrawAttempts = 1000

// Coin is a public-coin transcript. It is not safe for concurrent use; the
// protocol's sequential challenge derivation owns it exclusively.
type Coin struct {
	seed    []byte
	counter uint64
}

// New returns a coin initialized from the given seed bytes.
func New(seed []byte) *Coin {
	return &Coin{seed: crypto.Keccak256(seed)}
}

// Reseed absorbs prover data into the coin and resets the draw counter.
func (c *Coin) Reseed(data []byte) {
	c.seed = crypto.Keccak256(c.seed, data)
	c.counter = 0
}

// DrawElement samples one field element from the current coin state. Draws
// are counter-mode hashes of the seed, rejection-sampled below the modulus
// so the output is uniform over the field.
func (c *Coin) DrawElement() (goldilocks.Element, error) {
	modulus := goldilocks.Modulus().Uint64()
	var buf [8]byte
	for i := 0; i < maxDrawAttempts; i++ {
		c.counter++
		binary.BigEndian.PutUint64(buf[:], c.counter)
		digest := crypto.Keccak256(c.seed, buf[:])
		v := binary.BigEndian.Uint64(digest[:8])
		if v < modulus {
			return goldilocks.NewElement(v), nil
		}
	}
	return goldilocks.Element{}, fmt.Errorf("%w: no canonical element after %d attempts", ErrTranscript, maxDrawAttempts)
}
