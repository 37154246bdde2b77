// Package dendro: core types and sentinel errors for module detection.
package dendro

import "errors"

// Sentinel errors for clustering and cutting.
var (
	// ErrNilDissimilarity indicates a nil dissimilarity matrix.
	ErrNilDissimilarity = errors.New("dendro: nil dissimilarity matrix")
	// ErrTooFewLeaves indicates fewer than two genes to cluster.
	ErrTooFewLeaves = errors.New("dendro: need at least two leaves")
	// ErrNonFinite indicates a NaN or ±Inf dissimilarity entry.
	ErrNonFinite = errors.New("dendro: non-finite dissimilarity")
	// ErrNegativeDistance indicates a dissimilarity below zero.
	ErrNegativeDistance = errors.New("dendro: negative dissimilarity")
	// ErrNilDendrogram indicates a nil dendrogram passed to a cut.
	ErrNilDendrogram = errors.New("dendro: nil dendrogram")
	// ErrInvalidHeight indicates a non-finite or negative cut height.
	ErrInvalidHeight = errors.New("dendro: invalid cut height")
)

// Unassigned is the reserved module id for leaves not claimed by any
// qualifying branch.
const Unassigned = 0

// Merge records one agglomeration step. Node ids follow the usual
// convention: leaves are 0..n−1, the merge at step k creates node n+k.
type Merge struct {
	// A and B are the node ids joined by this merge, A < B.
	A, B int
	// Height is the average-linkage distance at which A and B join.
	Height float64
	// Size is the leaf count of the newly created node.
	Size int
}

// Dendrogram is the full agglomeration history: NLeaves leaves and
// NLeaves−1 merges with nondecreasing heights.
type Dendrogram struct {
	NLeaves int
	Merges  []Merge
}

// MaxHeight reports the height of the final (root) merge.
func (d *Dendrogram) MaxHeight() float64 {
	return d.Merges[len(d.Merges)-1].Height
}

// Assignment maps every leaf to a module id. Id 0 is reserved for
// "unassigned"; ids 1..NumModules are ordered by decreasing module size
// with ties broken by smallest member index.
type Assignment struct {
	// Labels holds one module id per leaf, indexed by leaf id.
	Labels []int
	// NumModules counts the non-zero modules.
	NumModules int
}

// Members returns the leaf indices assigned to module id, in ascending
// order. An unknown id yields an empty slice.
func (a *Assignment) Members(id int) []int {
	var out []int
	for leaf, label := range a.Labels {
		if label == id {
			out = append(out, leaf)
		}
	}
	return out
}

// Sizes returns the member count per module id, including Unassigned.
func (a *Assignment) Sizes() map[int]int {
	out := make(map[int]int)
	for _, label := range a.Labels {
		out[label]++
	}
	return out
}
