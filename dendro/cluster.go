package dendro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Cluster performs average-linkage (UPGMA) agglomerative clustering over a
// symmetric dissimilarity matrix.
//
// Algorithm:
//  1. Start with every leaf as its own cluster; copy the dissimilarity
//     into a working matrix indexed by cluster slot.
//  2. Repeatedly join the pair of active clusters with the smallest
//     distance. Ties break on the smallest slot pair, and a merged cluster
//     reuses its smaller slot, so tie-breaking follows original index
//     order and the tree is fully deterministic.
//  3. Update distances with the Lance–Williams average-linkage rule:
//     d(A∪B, C) = (|A|·d(A,C) + |B|·d(B,C)) / (|A|+|B|).
//
// Average linkage is reducible, so merge heights never decrease.
//
// Errors: ErrNilDissimilarity, ErrTooFewLeaves, ErrNonFinite,
// ErrNegativeDistance.
//
// Complexity: O(n³) time, O(n²) memory.
func Cluster(dis *mat.SymDense) (*Dendrogram, error) {
	if dis == nil {
		return nil, ErrNilDissimilarity
	}
	n, _ := dis.Dims()
	if n < 2 {
		return nil, ErrTooFewLeaves
	}

	// Working copy indexed by slot; slot i initially holds leaf i.
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v := dis.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrNonFinite
			}
			if v < 0 {
				return nil, ErrNegativeDistance
			}
			d[i][j] = v
		}
	}

	active := make([]bool, n)
	node := make([]int, n) // node id currently held by each slot
	size := make([]int, n) // leaf count per slot
	for i := 0; i < n; i++ {
		active[i] = true
		node[i] = i
		size[i] = 1
	}

	merges := make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		// Find the closest active pair; first-found wins on ties, which
		// by scan order is the smallest slot pair.
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if d[i][j] < best {
					bi, bj, best = i, j, d[i][j]
				}
			}
		}

		// Record the merge; children ordered by node id.
		a, b := node[bi], node[bj]
		if a > b {
			a, b = b, a
		}
		merges = append(merges, Merge{
			A:      a,
			B:      b,
			Height: best,
			Size:   size[bi] + size[bj],
		})

		// Lance–Williams update into the surviving slot bi.
		szA, szB := float64(size[bi]), float64(size[bj])
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			v := (szA*d[bi][k] + szB*d[bj][k]) / (szA + szB)
			d[bi][k] = v
			d[k][bi] = v
		}
		active[bj] = false
		size[bi] += size[bj]
		node[bi] = n + step
	}

	return &Dendrogram{NLeaves: n, Merges: merges}, nil
}
