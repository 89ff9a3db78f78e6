// Package vcs implements the Merkle-tree vector commitment scheme used to
// bind the tensor PCS's encoded matrix columns to a single short digest,
// modeled structurally on the teacher's core.MerkleTree (tree-levels
// array, sibling-index arithmetic, proof-node layout) but hashed with
// Grøstl-256 as Section 4.3 requires.
package vcs

import (
	"fmt"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
)

// Digest is a 32-byte Grøstl-256 output.
type Digest = [32]byte

// CommittedState is the prover-side state retained after CommitBatch, used
// to answer later opening queries without recomputing the tree.
type CommittedState struct {
	levels  [][]Digest // levels[0] = leaves, ... levels[last] = [root]
	nLeaves int
}

// CommitBatch commits to a batch of polynomials' encoded columns at once.
// columnDigests[p][j] is the digest of polynomial p's j-th encoded column;
// the leaf for column j is the hash of the concatenation of
// columnDigests[0][j], columnDigests[1][j], ... in polynomial order. The
// number of columns (code length) must be a power of two.
func CommitBatch(columnDigests [][]Digest) (Digest, *CommittedState, error) {
	if len(columnDigests) == 0 {
		return Digest{}, nil, fmt.Errorf("tensorpcs/vcs: commit batch requires at least one polynomial")
	}
	nCols := len(columnDigests[0])
	if nCols == 0 || nCols&(nCols-1) != 0 {
		return Digest{}, nil, fmt.Errorf("tensorpcs/vcs: code length must be a power of two, got %d", nCols)
	}
	for _, d := range columnDigests {
		if len(d) != nCols {
			return Digest{}, nil, fmt.Errorf("tensorpcs/vcs: inconsistent column counts: %d vs %d", len(d), nCols)
		}
	}

	leaves := make([]Digest, nCols)
	for j := 0; j < nCols; j++ {
		buf := make([]byte, 0, 32*len(columnDigests))
		for p := range columnDigests {
			buf = append(buf, columnDigests[p][j][:]...)
		}
		leaves[j] = core.Hash(buf)
	}

	levels := [][]Digest{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([]Digest, len(cur)/2)
		for i := range next {
			next[i] = core.Compress(cur[2*i], cur[2*i+1])
		}
		levels = append(levels, next)
		cur = next
	}

	state := &CommittedState{levels: levels, nLeaves: nCols}
	return cur[0], state, nil
}

// ProveBatchOpening returns the Merkle authentication path (sibling
// digests, leaf to root) for column index j.
func (s *CommittedState) ProveBatchOpening(j int) ([]Digest, error) {
	if j < 0 || j >= s.nLeaves {
		return nil, fmt.Errorf("tensorpcs/vcs: column index %d out of range [0,%d)", j, s.nLeaves)
	}
	path := make([]Digest, 0, len(s.levels)-1)
	idx := j
	for level := 0; level < len(s.levels)-1; level++ {
		sibling := idx ^ 1
		path = append(path, s.levels[level][sibling])
		idx /= 2
	}
	return path, nil
}

// VerifyBatchOpening recomputes the leaf for column j from leafDigests
// (the per-polynomial column digests opened by the prover) and checks the
// authentication path reconstructs root.
func VerifyBatchOpening(root Digest, j int, path []Digest, leafDigests []Digest) error {
	buf := make([]byte, 0, 32*len(leafDigests))
	for _, d := range leafDigests {
		buf = append(buf, d[:]...)
	}
	cur := core.Hash(buf)
	idx := j
	for _, sibling := range path {
		if idx%2 == 0 {
			cur = core.Compress(cur, sibling)
		} else {
			cur = core.Compress(sibling, cur)
		}
		idx /= 2
	}
	if cur != root {
		return fmt.Errorf("tensorpcs/vcs: merkle authentication path does not reconstruct the committed root")
	}
	return nil
}
