package dendro

import (
	"math"
	"sort"
)

// CutDynamic partitions a dendrogram into modules with a shape-sensitive
// branch cut.
//
// Algorithm:
//  1. Static stage: a cut at CutHeight (by default DefaultCutFraction of
//     the root height) isolates the candidate branches, the maximal
//     subtrees that merge entirely below the cut.
//  2. Dynamic stage: each candidate branch of at least MinClusterSize
//     leaves is recursively examined. A merge is split into its two
//     children only when both children hold at least MinClusterSize
//     leaves and each child's core height (the mean height of the merges
//     inside it) sits below the joining merge by a gap scaled from
//     DeepSplit. Otherwise the branch is kept whole as one module. The
//     decision looks at local branch shape, not a global height.
//  3. Leaves of candidate branches smaller than MinClusterSize get module
//     0. Accepted modules are renumbered 1..K by decreasing size, ties by
//     smallest member index.
//
// The cut is fully deterministic for identical input.
//
// Errors: ErrNilDendrogram.
//
// Complexity: O(n) time and memory beyond the dendrogram itself.
func CutDynamic(d *Dendrogram, opts ...Option) (*Assignment, error) {
	o := gatherOptions(opts)
	if d == nil {
		return nil, ErrNilDendrogram
	}

	t := indexTree(d)
	cut := o.cutHeight
	if cut == 0 {
		cut = DefaultCutFraction * d.MaxHeight()
	}
	gap := gapFractions[o.deepSplit] * cut

	var modules [][]int
	for _, v := range t.maximalNodes(cut) {
		if t.size(v) < o.minClusterSize {
			continue // leaves fall through to module 0
		}
		t.split(v, gap, o.minClusterSize, &modules)
	}
	return label(d.NLeaves, modules), nil
}

// CutStatic partitions a dendrogram with a single global height cut:
// every maximal subtree merging below height becomes a module when it has
// at least minClusterSize leaves, everything else is module 0. Useful as a
// baseline against the dynamic cut.
//
// Errors: ErrNilDendrogram, ErrInvalidHeight (NaN, ±Inf or height ≤ 0).
func CutStatic(d *Dendrogram, height float64, minClusterSize int) (*Assignment, error) {
	if d == nil {
		return nil, ErrNilDendrogram
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return nil, ErrInvalidHeight
	}
	if minClusterSize < 1 {
		minClusterSize = 1
	}

	t := indexTree(d)
	var modules [][]int
	for _, v := range t.maximalNodes(height) {
		if t.size(v) < minClusterSize {
			continue
		}
		modules = append(modules, t.leaves(v))
	}
	return label(d.NLeaves, modules), nil
}

// tree is the indexed form of a dendrogram used by the cuts.
type tree struct {
	n      int
	left   []int     // child node ids per merge
	right  []int
	height []float64 // merge heights
	parent []int     // parent node id per node; -1 for the root
	sizes  []int     // leaf count per node
	hsum   []float64 // sum of merge heights inside each node's subtree
	hcnt   []int     // number of merges inside each node's subtree
}

// indexTree precomputes per-node sizes, parents and core-height sums.
func indexTree(d *Dendrogram) *tree {
	n := d.NLeaves
	total := 2*n - 1
	t := &tree{
		n:      n,
		left:   make([]int, n-1),
		right:  make([]int, n-1),
		height: make([]float64, n-1),
		parent: make([]int, total),
		sizes:  make([]int, total),
		hsum:   make([]float64, total),
		hcnt:   make([]int, total),
	}
	for i := range t.parent {
		t.parent[i] = -1
	}
	for i := 0; i < n; i++ {
		t.sizes[i] = 1
	}
	for k, m := range d.Merges {
		id := n + k
		t.left[k], t.right[k], t.height[k] = m.A, m.B, m.Height
		t.parent[m.A], t.parent[m.B] = id, id
		t.sizes[id] = t.sizes[m.A] + t.sizes[m.B]
		t.hsum[id] = t.hsum[m.A] + t.hsum[m.B] + m.Height
		t.hcnt[id] = t.hcnt[m.A] + t.hcnt[m.B] + 1
	}
	return t
}

func (t *tree) size(v int) int { return t.sizes[v] }

// coreHeight is the mean merge height inside v's subtree; 0 for leaves.
func (t *tree) coreHeight(v int) float64 {
	if t.hcnt[v] == 0 {
		return 0
	}
	return t.hsum[v] / float64(t.hcnt[v])
}

// mergeHeight reports the height at which internal node v was created.
func (t *tree) mergeHeight(v int) float64 { return t.height[v-t.n] }

// maximalNodes returns, in ascending node-id order, every node that sits
// entirely below the cut while its parent does not (or it is the root).
func (t *tree) maximalNodes(cut float64) []int {
	below := func(v int) bool {
		return v < t.n || t.mergeHeight(v) <= cut
	}
	var out []int
	for v := 0; v < 2*t.n-1; v++ {
		if !below(v) {
			continue
		}
		if p := t.parent[v]; p == -1 || !below(p) {
			out = append(out, v)
		}
	}
	return out
}

// leaves collects the leaf ids under v in ascending order.
func (t *tree) leaves(v int) []int {
	var out []int
	stack := []int{v}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if x < t.n {
			out = append(out, x)
			continue
		}
		stack = append(stack, t.left[x-t.n], t.right[x-t.n])
	}
	sort.Ints(out)
	return out
}

// split recursively descends v, emitting one module per accepted branch.
func (t *tree) split(v int, gap float64, minSize int, modules *[][]int) {
	// A branch too small to yield two modules stays whole.
	if v < t.n || t.size(v) < 2*minSize {
		*modules = append(*modules, t.leaves(v))
		return
	}
	l, r := t.left[v-t.n], t.right[v-t.n]
	h := t.mergeHeight(v)
	ok := func(c int) bool {
		return t.size(c) >= minSize && h-t.coreHeight(c) >= gap
	}
	if ok(l) && ok(r) {
		t.split(l, gap, minSize, modules)
		t.split(r, gap, minSize, modules)
		return
	}
	*modules = append(*modules, t.leaves(v))
}

// label renumbers modules 1..K by decreasing size (ties by smallest member
// index) and assigns 0 to every unclaimed leaf.
func label(nLeaves int, modules [][]int) *Assignment {
	sort.SliceStable(modules, func(a, b int) bool {
		if len(modules[a]) != len(modules[b]) {
			return len(modules[a]) > len(modules[b])
		}
		return modules[a][0] < modules[b][0]
	})
	labels := make([]int, nLeaves)
	for id, members := range modules {
		for _, leaf := range members {
			labels[leaf] = id + 1
		}
	}
	return &Assignment{Labels: labels, NumModules: len(modules)}
}
