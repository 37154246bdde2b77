package trait

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/lumigen/coexnet/eigengene"
	"github.com/lumigen/coexnet/expr"
)

// ModuleMembership computes the fuzzy membership of every gene in every
// summarized module: the absolute Pearson correlation between the gene's
// expression profile and the module eigengene. The result is genes ×
// modules with columns ordered as set.Modules; all values lie in [0,1].
//
// A zero-variance gene (or zero eigengene) has an undefined correlation;
// the neutral membership 0 is substituted, mirroring the similarity
// estimator's recovery policy.
//
// Errors: ErrNilInput, ErrDimensionMismatch (sample counts differ).
//
// Complexity: O(genes·modules·samples).
func ModuleMembership(m *expr.Matrix, set *eigengene.Set) (*mat.Dense, error) {
	if m == nil || m.Data == nil || set == nil || set.Data == nil {
		return nil, ErrNilInput
	}
	nSamples, nGenes := m.Data.Dims()
	nModules, egSamples := set.Data.Dims()
	if egSamples != nSamples {
		return nil, ErrDimensionMismatch
	}

	egs := make([][]float64, nModules)
	for i := range egs {
		egs[i] = mat.Row(nil, i, set.Data)
	}

	out := mat.NewDense(nGenes, nModules, nil)
	for g := 0; g < nGenes; g++ {
		col := m.GeneColumn(g)
		for c, eg := range egs {
			v := math.Abs(stat.Correlation(col, eg, nil))
			if math.IsNaN(v) {
				v = 0 // degenerate profile or eigengene
			}
			if v > 1 {
				v = 1
			}
			out.Set(g, c, v)
		}
	}
	return out, nil
}
