package adjacency

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Build raises every off-diagonal similarity to the power beta:
// a_ij = s_ij^β, with a unit diagonal. The input is not mutated.
//
// For fixed β the mapping is monotonically non-increasing in dissimilarity:
// smaller similarity can never yield larger adjacency.
//
// Errors: ErrNilSimilarity, ErrTooFewGenes, ErrInvalidBeta.
//
// Complexity: O(genes²).
func Build(sim *mat.SymDense, beta float64) (*Matrix, error) {
	if sim == nil {
		return nil, ErrNilSimilarity
	}
	n, _ := sim.Dims()
	if n < 2 {
		return nil, ErrTooFewGenes
	}
	if beta < 1 || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, ErrInvalidBeta
	}

	adj := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		adj.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			adj.SetSym(i, j, math.Pow(sim.At(i, j), beta))
		}
	}
	return &Matrix{Sym: adj, Beta: beta}, nil
}

// TopologicalOverlap refines an adjacency matrix into the topological
// overlap matrix:
//
//	TOM_ij = (Σ_{u≠i,j} a_iu·a_ju + a_ij) / (min(k_i,k_j) + 1 − a_ij)
//
// with TOM_ii = 1, values clamped to [0,1], and k_i = Σ_{j≠i} a_ij.
// Two genes overlap strongly when they share the same neighborhood even if
// their direct edge is weak, which makes TOM-based dissimilarity less noisy
// than raw adjacency for module detection.
//
// Rows are fanned out across workers; writes are disjoint, so the result is
// identical to a serial run.
//
// Complexity: O(genes³) time, O(genes²) memory.
func TopologicalOverlap(adj *Matrix, opts ...Option) *Matrix {
	o := gatherOptions(opts)
	n, _ := adj.Sym.Dims()

	// Connectivities exclude the unit diagonal.
	k := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sum += adj.Sym.At(i, j)
		}
		k[i] = sum
	}

	tom := mat.NewSymDense(n, nil)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			tom.SetSym(i, i, 1)
			for j := i + 1; j < n; j++ {
				shared := 0.0
				for u := 0; u < n; u++ {
					if u == i || u == j {
						continue
					}
					shared += adj.Sym.At(i, u) * adj.Sym.At(j, u)
				}
				aij := adj.Sym.At(i, j)
				denom := math.Min(k[i], k[j]) + 1 - aij
				v := 0.0
				if denom > 0 {
					v = (shared + aij) / denom
				}
				tom.SetSym(i, j, math.Min(1, math.Max(0, v)))
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return &Matrix{Sym: tom, Beta: adj.Beta}
}

// Dissimilarity returns 1 − m with a zero diagonal, the distance consumed by
// hierarchical clustering. The input is not mutated.
func Dissimilarity(m *mat.SymDense) *mat.SymDense {
	n, _ := m.Dims()
	dis := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dis.SetSym(i, j, 1-m.At(i, j))
		}
	}
	return dis
}
