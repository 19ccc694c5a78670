package fri

import "golang.org/x/exp/slices"

// FoldPositions reduces query positions modulo modulus, appending a folded
// position only on its first occurrence. Several queries can collapse onto
// the same coset representative once the domain shrinks; the coset's Merkle
// leaf is then verified once. Order follows first occurrence in the input.
func FoldPositions(positions []uint64, modulus uint64) []uint64 {
	folded := make([]uint64, 0, len(positions))
	for _, p := range positions {
		fp := p % modulus
		if !slices.Contains(folded, fp) {
			folded = append(folded, fp)
		}
	}
	return folded
}
