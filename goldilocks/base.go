// This package implements the domain arithmetic the FRI verifier runs on:
// power-of-two utilities, two-adic roots of unity and subgroup enumeration
// over the Goldilocks field. Element arithmetic itself comes from
// gnark-crypto; this package only adds what the folding protocol needs on
// top of it.
package goldilocks

// The modulus is p = 2^64 - 2^32 + 1. Its multiplicative group has order
// p - 1 = 2^32 * (2^32 - 1), so subgroups of any power-of-two order up to
// 2^32 exist and every evaluation domain in the protocol is one of them.

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// The multiplicative group generator of the field.
var MULTIPLICATIVE_GROUP_GENERATOR goldilocks.Element = goldilocks.NewElement(7)

// The two adicity of the field.
var TWO_ADICITY uint64 = 32

// The power of two generator of the field, i.e. the canonical generator of
// the maximal two-adic subgroup.
var POWER_OF_TWO_GENERATOR goldilocks.Element = goldilocks.NewElement(1753635133440165772)

var (
	ErrInvalidInput   = errors.New("goldilocks: invalid input")
	ErrNotAPowerOfTwo = errors.New("goldilocks: not a power of two")
	ErrOrderTooLarge  = errors.New("goldilocks: order exceeds field two-adicity")
	ErrZeroOrder      = errors.New("goldilocks: order must be positive")
)

// NextPowerOfTwo returns the smallest power of two p with p >= x. The result
// is re-derived from the bit length of x and certified against the contract
// x <= p <= 2x-1, so a caller handing us an untrusted size cannot smuggle in
// a different domain.
func NextPowerOfTwo(x uint64) (uint64, error) {
	if x == 0 {
		return 0, fmt.Errorf("%w: x must be positive", ErrInvalidInput)
	}
	n := bits.Len64(x - 1)
	if n >= 64 {
		return 0, fmt.Errorf("%w: next power of two of %d overflows uint64", ErrInvalidInput, x)
	}
	p := uint64(1) << n
	if p < x || (x > 1 && p > 2*x-1) {
		return 0, fmt.Errorf("%w: bit-length witness %d does not certify %d", ErrInvalidInput, n, x)
	}
	return p, nil
}

// Log2Exact returns k such that 2^k == n.
func Log2Exact(n uint64) (uint64, error) {
	if n == 0 || n&(n-1) != 0 {
		return 0, fmt.Errorf("%w: %d", ErrNotAPowerOfTwo, n)
	}
	return uint64(bits.TrailingZeros64(n)), nil
}

// PrimitiveRootOfUnity returns a generator of the multiplicative subgroup of
// order 2^orderBits, obtained by repeatedly squaring the canonical maximal
// two-adic generator.
func PrimitiveRootOfUnity(orderBits uint64) (goldilocks.Element, error) {
	if orderBits == 0 {
		return goldilocks.Element{}, ErrZeroOrder
	}
	if orderBits > TWO_ADICITY {
		return goldilocks.Element{}, fmt.Errorf("%w: 2^%d", ErrOrderTooLarge, orderBits)
	}
	res := goldilocks.NewElement(POWER_OF_TWO_GENERATOR.Uint64())
	for i := uint64(0); i < TWO_ADICITY-orderBits; i++ {
		res.Square(&res)
	}
	return res, nil
}

// TwoAdicSubgroup returns the full subgroup of order 2^orderBits in
// multiplicative order: 1, w, w^2, ...
func TwoAdicSubgroup(orderBits uint64) ([]goldilocks.Element, error) {
	rootOfUnity, err := PrimitiveRootOfUnity(orderBits)
	if err != nil {
		return nil, err
	}
	res := make([]goldilocks.Element, 1<<orderBits)
	res[0] = goldilocks.One()
	for i := 1; i < len(res); i++ {
		res[i].Mul(&res[i-1], &rootOfUnity)
	}
	return res, nil
}

// ExpUint64 returns base^pow.
func ExpUint64(base goldilocks.Element, pow uint64) goldilocks.Element {
	var res goldilocks.Element
	res.Exp(base, new(big.Int).SetUint64(pow))
	return res
}
