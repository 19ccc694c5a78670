package goldilocks

import (
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// NTT transforms values in place from coefficient form to evaluations over
// the two-adic subgroup of matching size, in natural order. The length must
// be a power of two no larger than 2^TWO_ADICITY.
func NTT(values []goldilocks.Element) error {
	logN, err := Log2Exact(uint64(len(values)))
	if err != nil {
		return err
	}
	if logN == 0 {
		return nil
	}
	root, err := PrimitiveRootOfUnity(logN)
	if err != nil {
		return err
	}
	butterfly(values, root, logN)
	return nil
}

// InterpolateOnSubgroup returns the coefficients of the unique polynomial of
// degree < len(evals) whose evaluations over the two-adic subgroup of
// matching size are evals. The input is not modified.
func InterpolateOnSubgroup(evals []goldilocks.Element) ([]goldilocks.Element, error) {
	n := uint64(len(evals))
	logN, err := Log2Exact(n)
	if err != nil {
		return nil, fmt.Errorf("%w: interpolation domain size %d", err, n)
	}
	coeffs := make([]goldilocks.Element, n)
	copy(coeffs, evals)
	if logN == 0 {
		return coeffs, nil
	}
	root, err := PrimitiveRootOfUnity(logN)
	if err != nil {
		return nil, err
	}
	var rootInv goldilocks.Element
	rootInv.Inverse(&root)
	butterfly(coeffs, rootInv, logN)

	var nInv goldilocks.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)
	for i := range coeffs {
		coeffs[i].Mul(&coeffs[i], &nInv)
	}
	return coeffs, nil
}

// butterfly is a radix-2 Cooley-Tukey pass: bit-reverse permutation followed
// by log2(n) rounds of butterflies. root must have order len(a).
func butterfly(a []goldilocks.Element, root goldilocks.Element, logN uint64) {
	n := uint64(len(a))
	for i := uint64(0); i < n; i++ {
		j := bits.Reverse64(i) >> (64 - logN)
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
	for length := uint64(2); length <= n; length <<= 1 {
		step := ExpUint64(root, n/length)
		half := length / 2
		for start := uint64(0); start < n; start += length {
			w := goldilocks.One()
			for k := uint64(0); k < half; k++ {
				var u, v goldilocks.Element
				u.Set(&a[start+k])
				v.Mul(&a[start+k+half], &w)
				a[start+k].Add(&u, &v)
				a[start+k+half].Sub(&u, &v)
				w.Mul(&w, &step)
			}
		}
	}
}
