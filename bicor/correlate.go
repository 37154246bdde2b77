package bicor

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/expr"
)

// biweightTuning is the standard 9·MAD cutoff of Tukey's biweight.
const biweightTuning = 9.0

// Correlate computes the genes × genes similarity matrix of m.
//
// Algorithm:
//  1. Per gene, precompute a normalized profile vector t such that
//     dot(t_i, t_j) equals the chosen correlation of genes i and j:
//     - biweight: x̃ = (x−med)·w, w = (1−u²)² for |u|<1, u = (x−med)/(9·MAD),
//     then t = x̃ / ‖x̃‖;
//     - Pearson: t = (x−mean) / ‖x−mean‖.
//  2. For every pair i<j set sim = |dot(t_i, t_j)| clamped to [0,1].
//     Rows are fanned out across workers; writes are disjoint, so the
//     result is identical to a serial run.
//
// Zero-variance genes get t = nil and similarity 0 against every other gene;
// their indices are returned on Similarity.ZeroVariance. The diagonal is 1
// for all genes, including degenerate ones.
//
// Errors: ErrNilMatrix, ErrTooFewGenes, ErrTooFewSamples.
//
// Complexity: O(genes²·samples) time, O(genes²) memory.
func Correlate(m *expr.Matrix, opts ...Option) (*Similarity, error) {
	o := gatherOptions(opts)

	if m == nil || m.Data == nil {
		return nil, ErrNilMatrix
	}
	nSamples, nGenes := m.Data.Dims()
	if nGenes < 2 {
		return nil, ErrTooFewGenes
	}
	if nSamples < 3 {
		return nil, ErrTooFewSamples
	}

	// Stage 1: normalized profile per gene (serial, O(genes·samples·log)).
	profiles := make([][]float64, nGenes)
	var zeroVar []int
	for j := 0; j < nGenes; j++ {
		col := m.GeneColumn(j)
		t := normalize(col, o.estimator)
		if t == nil {
			zeroVar = append(zeroVar, j)
		}
		profiles[j] = t
	}

	// Stage 2: pairwise dot products, fanned out per row.
	sym := mat.NewSymDense(nGenes, nil)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(o.workers)
	for i := 0; i < nGenes; i++ {
		i := i
		g.Go(func() error {
			sym.SetSym(i, i, 1)
			ti := profiles[i]
			for j := i + 1; j < nGenes; j++ {
				tj := profiles[j]
				if ti == nil || tj == nil {
					sym.SetSym(i, j, 0)
					continue
				}
				s := math.Abs(floats.Dot(ti, tj))
				if s > 1 {
					s = 1 // guard against rounding just above unity
				}
				sym.SetSym(i, j, s)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; limit only bounds parallelism

	return &Similarity{
		Sym:          sym,
		GeneIDs:      append([]string(nil), m.GeneIDs...),
		ZeroVariance: zeroVar,
	}, nil
}

// normalize maps a raw profile to a unit vector whose pairwise dot products
// equal the requested correlation. Returns nil for zero-variance profiles.
func normalize(x []float64, e Estimator) []float64 {
	if e == Pearson {
		return normalizePearson(x)
	}
	med := median(x)
	dev := make([]float64, len(x))
	for i, v := range x {
		dev[i] = math.Abs(v - med)
	}
	madv := median(dev)
	if madv == 0 {
		// Zero MAD with positive variance: fall back to Pearson
		// normalization. Zero variance stays degenerate.
		return normalizePearson(x)
	}
	t := make([]float64, len(x))
	for i, v := range x {
		u := (v - med) / (biweightTuning * madv)
		if u <= -1 || u >= 1 {
			continue // weight 0
		}
		w := (1 - u*u) * (1 - u*u)
		t[i] = (v - med) * w
	}
	return unit(t)
}

// normalizePearson centers x and scales it to unit norm; nil if degenerate.
func normalizePearson(x []float64) []float64 {
	mean := floats.Sum(x) / float64(len(x))
	t := make([]float64, len(x))
	for i, v := range x {
		t[i] = v - mean
	}
	return unit(t)
}

// unit scales t to unit Euclidean norm in place; nil when ‖t‖ = 0.
func unit(t []float64) []float64 {
	norm := math.Sqrt(floats.Dot(t, t))
	if norm == 0 {
		return nil
	}
	floats.Scale(1/norm, t)
	return t
}

// median returns the sample median of xs without mutating it.
func median(xs []float64) float64 {
	tmp := append([]float64(nil), xs...)
	sort.Float64s(tmp)
	n := len(tmp)
	if n%2 == 1 {
		return tmp[n/2]
	}
	return 0.5 * (tmp[n/2-1] + tmp[n/2])
}
