package goldilocks

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// EvalPoly evaluates a polynomial given by its coefficients (low degree
// first) at x, using Horner's rule.
func EvalPoly(coeffs []goldilocks.Element, x goldilocks.Element) goldilocks.Element {
	var res goldilocks.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		res.Mul(&res, &x)
		res.Add(&res, &coeffs[i])
	}
	return res
}

// EvalLagrange evaluates, at x, the unique polynomial of degree < len(xs)
// passing through the points (xs[i], ys[i]). It uses the barycentric form
// with quadratic weight computation, which is fine for the small coset and
// remainder domains the verifier interpolates over. If x coincides with an
// interpolation node the node's value is returned directly.
func EvalLagrange(xs, ys []goldilocks.Element, x goldilocks.Element) (goldilocks.Element, error) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return goldilocks.Element{}, fmt.Errorf("%w: interpolation needs matching non-empty point sets", ErrInvalidInput)
	}

	for i := range xs {
		if xs[i].Equal(&x) {
			return ys[i], nil
		}
	}

	// l(x) = prod (x - xs[i])
	lX := goldilocks.One()
	for i := range xs {
		var d goldilocks.Element
		d.Sub(&x, &xs[i])
		lX.Mul(&lX, &d)
	}

	var sum goldilocks.Element
	for i := range xs {
		// w_i = prod_{j != i} (xs[i] - xs[j])
		w := goldilocks.One()
		for j := range xs {
			if i == j {
				continue
			}
			var d goldilocks.Element
			d.Sub(&xs[i], &xs[j])
			if d.IsZero() {
				return goldilocks.Element{}, fmt.Errorf("%w: duplicate interpolation node", ErrInvalidInput)
			}
			w.Mul(&w, &d)
		}
		var denom goldilocks.Element
		denom.Sub(&x, &xs[i])
		denom.Mul(&denom, &w)
		denom.Inverse(&denom)
		denom.Mul(&denom, &ys[i])
		sum.Add(&sum, &denom)
	}

	sum.Mul(&sum, &lX)
	return sum, nil
}
