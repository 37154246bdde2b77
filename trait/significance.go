package trait

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/expr"
)

// GeneSignificance scores every gene against a binary trait with a Welch
// two-sample t-test (group variances assumed unequal).
//
// Algorithm (per gene):
//  1. Split the gene's profile into the two trait groups.
//  2. t = (m₁−m₂) / √(v₁/n₁ + v₂/n₂) with the Welch–Satterthwaite degrees
//     of freedom; the two-sided p-value comes from the Student's t CDF.
//  3. Effect size is Cohen's d on the pooled standard deviation.
//
// Degenerate profiles are handled locally: when both groups have zero
// variance the test is decided by the means alone (p=1 when equal,
// p=minP otherwise); p-values are floored at minP so −log10(p) stays
// finite.
//
// Errors: ErrNilInput, ErrDimensionMismatch, ErrTraitNotBinary,
// ErrGroupTooSmall.
//
// Complexity: O(genes·samples).
func GeneSignificance(m *expr.Matrix, tv *Vector) ([]Result, error) {
	if m == nil || m.Data == nil || tv == nil {
		return nil, ErrNilInput
	}
	nSamples, nGenes := m.Data.Dims()
	if len(tv.Values) != nSamples {
		return nil, ErrDimensionMismatch
	}

	groupA, groupB, err := split(tv.Values)
	if err != nil {
		return nil, err
	}

	out := make([]Result, nGenes)
	a := make([]float64, len(groupA))
	b := make([]float64, len(groupB))
	for g := 0; g < nGenes; g++ {
		col := m.GeneColumn(g)
		for i, s := range groupA {
			a[i] = col[s]
		}
		for i, s := range groupB {
			b[i] = col[s]
		}
		p, d := welch(a, b)
		out[g] = Result{
			GeneID:     m.GeneIDs[g],
			P:          p,
			LogP:       -math.Log10(p),
			EffectSize: d,
		}
	}
	return out, nil
}

// ModuleSignificance aggregates gene significance per module as the mean of
// −log10(p) across member genes, for every module id present in the
// assignment (including 0 when unassigned genes exist).
//
// Errors: ErrNilInput, ErrDimensionMismatch.
func ModuleSignificance(gs []Result, assign *dendro.Assignment) (map[int]float64, error) {
	if gs == nil || assign == nil {
		return nil, ErrNilInput
	}
	if len(gs) != len(assign.Labels) {
		return nil, ErrDimensionMismatch
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for g, r := range gs {
		id := assign.Labels[g]
		sums[id] += r.LogP
		counts[id]++
	}
	out := make(map[int]float64, len(sums))
	for id, sum := range sums {
		out[id] = sum / float64(counts[id])
	}
	return out, nil
}

// split partitions sample indices by the two distinct trait values, the
// smaller value first. Returns ErrTraitNotBinary for any other arity and
// ErrGroupTooSmall when a group has fewer than two samples.
func split(values []float64) (groupA, groupB []int, err error) {
	distinct := make([]float64, 0, 2)
	for _, v := range values {
		found := false
		for _, d := range distinct {
			if d == v {
				found = true
				break
			}
		}
		if !found {
			distinct = append(distinct, v)
		}
	}
	if len(distinct) != 2 {
		return nil, nil, ErrTraitNotBinary
	}
	sort.Float64s(distinct)
	for i, v := range values {
		if v == distinct[0] {
			groupA = append(groupA, i)
		} else {
			groupB = append(groupB, i)
		}
	}
	if len(groupA) < 2 || len(groupB) < 2 {
		return nil, nil, ErrGroupTooSmall
	}
	return groupA, groupB, nil
}

// welch computes the two-sided Welch-test p-value and Cohen's d for two
// samples.
func welch(a, b []float64) (p, d float64) {
	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	nA, nB := float64(len(a)), float64(len(b))

	diff := meanA - meanB
	se2 := varA/nA + varB/nB
	if se2 == 0 {
		// No within-group variability: the means decide.
		if diff == 0 {
			return 1, 0
		}
		return minP, math.Inf(sign(diff))
	}

	t := diff / math.Sqrt(se2)
	// Welch–Satterthwaite degrees of freedom.
	nu := se2 * se2 / ((varA*varA)/(nA*nA*(nA-1)) + (varB*varB)/(nB*nB*(nB-1)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	p = 2 * dist.CDF(-math.Abs(t))
	if p < minP {
		p = minP
	}

	pooled := math.Sqrt(((nA-1)*varA + (nB-1)*varB) / (nA + nB - 2))
	if pooled == 0 {
		return p, math.Inf(sign(diff))
	}
	return p, diff / pooled
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
