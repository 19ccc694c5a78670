// Package merkle wraps the gnark-crypto merkletree accumulator with the leaf
// encoding the FRI protocol commits to: a leaf is the big-endian
// concatenation of one coset's field elements, and nodes are hashed with
// Keccak-256.
package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"hash"

	"github.com/consensys/gnark-crypto/accumulator/merkletree"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the byte length of a tree node hash.
const DigestSize = 32

// Digest is a Merkle root or node hash.
type Digest [DigestSize]byte

var ErrEmptyTree = errors.New("merkle: empty leaf set")

// Hasher returns the hash function used for leaves and internal nodes.
func Hasher() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// LeafBytes serializes a value group into the leaf pre-image the tree
// commits to.
func LeafBytes(values []goldilocks.Element) []byte {
	buf := make([]byte, 0, len(values)*goldilocks.Bytes)
	for i := range values {
		b := values[i].Bytes()
		buf = append(buf, b[:]...)
	}
	return buf
}

// Proof authenticates one leaf against a root. ProofSet[0] is the revealed
// leaf pre-image; the remaining entries are sibling hashes, leaf to root.
type Proof struct {
	ProofSet  [][]byte
	NumLeaves uint64
}

// Leaf returns the revealed leaf pre-image carried by the proof.
func (p Proof) Leaf() []byte {
	if len(p.ProofSet) == 0 {
		return nil
	}
	return p.ProofSet[0]
}

// MatchesValues reports whether the proof's leaf pre-image is exactly the
// encoding of the given value group.
func (p Proof) MatchesValues(values []goldilocks.Element) bool {
	return bytes.Equal(p.Leaf(), LeafBytes(values))
}

// Commit builds a tree over the leaves and returns its root.
func Commit(leaves [][]byte) (Digest, error) {
	if len(leaves) == 0 {
		return Digest{}, ErrEmptyTree
	}
	tree := merkletree.New(Hasher())
	for _, leaf := range leaves {
		tree.Push(leaf)
	}
	var root Digest
	copy(root[:], tree.Root())
	return root, nil
}

// Prove returns the authentication path for the leaf at the given index.
func Prove(leaves [][]byte, index uint64) (Proof, error) {
	if index >= uint64(len(leaves)) {
		return Proof{}, fmt.Errorf("merkle: leaf index %d out of range for %d leaves", index, len(leaves))
	}
	tree := merkletree.New(Hasher())
	if err := tree.SetIndex(index); err != nil {
		return Proof{}, err
	}
	for _, leaf := range leaves {
		tree.Push(leaf)
	}
	_, proofSet, _, numLeaves := tree.Prove()
	return Proof{ProofSet: proofSet, NumLeaves: numLeaves}, nil
}

// Verify checks that the proof authenticates its leaf pre-image at index
// against root. numLeaves is the verifier's own expectation of the tree
// size; a proof claiming a different shape is rejected outright.
func Verify(root Digest, index uint64, numLeaves uint64, p Proof) bool {
	if p.NumLeaves != numLeaves || index >= numLeaves || len(p.ProofSet) == 0 {
		return false
	}
	return merkletree.VerifyProof(Hasher(), root[:], p.ProofSet, index, numLeaves)
}
