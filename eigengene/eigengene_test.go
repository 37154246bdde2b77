package eigengene_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/eigengene"
	"github.com/lumigen/coexnet/expr"
)

// blockMatrix builds a 4-sample × 6-gene matrix whose first three genes
// follow an ascending pattern and last three the reverse, with small
// per-gene offsets so no two columns are identical.
func blockMatrix(t *testing.T) *expr.Matrix {
	t.Helper()
	data := mat.NewDense(4, 6, nil)
	up := []float64{1, 2, 3, 4}
	for g := 0; g < 6; g++ {
		for s := 0; s < 4; s++ {
			v := up[s]
			if g >= 3 {
				v = up[3-s]
			}
			data.Set(s, g, v*(1+0.1*float64(g)))
		}
	}
	m, err := expr.New(data,
		[]string{"s1", "s2", "s3", "s4"},
		[]string{"g1", "g2", "g3", "g4", "g5", "g6"})
	require.NoError(t, err)
	return m
}

// twoModuleAssignment maps genes 0..2 to module 1 and 3..5 to module 2.
func twoModuleAssignment() *dendro.Assignment {
	return &dendro.Assignment{Labels: []int{1, 1, 1, 2, 2, 2}, NumModules: 2}
}

// TestSummarize_LengthAndNorm verifies every eigengene spans all samples
// with unit norm.
func TestSummarize_LengthAndNorm(t *testing.T) {
	set, err := eigengene.Summarize(blockMatrix(t), twoModuleAssignment())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, set.Modules)
	r, c := set.Data.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c, "eigengene length equals sample count")
	for _, id := range set.Modules {
		eg := set.Row(id)
		assert.InDelta(t, 1.0, math.Sqrt(floats.Dot(eg, eg)), 1e-12, "unit norm")
	}
}

// TestSummarize_MajorityPositiveOrientation verifies member genes correlate
// positively with their module eigengene.
func TestSummarize_MajorityPositiveOrientation(t *testing.T) {
	m := blockMatrix(t)
	set, err := eigengene.Summarize(m, twoModuleAssignment())
	require.NoError(t, err)

	for id, members := range map[int][]int{1: {0, 1, 2}, 2: {3, 4, 5}} {
		eg := set.Row(id)
		for _, g := range members {
			cor := stat.Correlation(m.GeneColumn(g), eg, nil)
			assert.Greater(t, cor, 0.9, "member genes track their eigengene")
		}
	}
}

// TestSummarize_OppositeModulesAntiCorrelate checks the two block
// eigengenes capture the opposing expression patterns.
func TestSummarize_OppositeModulesAntiCorrelate(t *testing.T) {
	set, err := eigengene.Summarize(blockMatrix(t), twoModuleAssignment())
	require.NoError(t, err)

	cor := stat.Correlation(set.Row(1), set.Row(2), nil)
	assert.Less(t, cor, -0.9, "ascending and descending blocks oppose each other")
}

// TestSummarize_SingleGeneModule verifies the degenerate case: the
// eigengene is the gene's own centered, unit-norm profile.
func TestSummarize_SingleGeneModule(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{
		1, 9,
		2, 9,
		6, 9,
	})
	m, err := expr.New(data, []string{"s1", "s2", "s3"}, []string{"g1", "g2"})
	require.NoError(t, err)
	assign := &dendro.Assignment{Labels: []int{1, 0}, NumModules: 1}

	set, err := eigengene.Summarize(m, assign)
	require.NoError(t, err)

	eg := set.Row(1)
	require.Len(t, eg, 3)
	// Centered profile of g1 is (-2, -1, 3); check direction and norm.
	want := []float64{-2, -1, 3}
	norm := math.Sqrt(floats.Dot(want, want))
	for i := range want {
		assert.InDelta(t, want[i]/norm, eg[i], 1e-12)
	}
}

// TestSummarize_UnassignedExcludedByDefault verifies module 0 handling.
func TestSummarize_UnassignedExcludedByDefault(t *testing.T) {
	m := blockMatrix(t)
	assign := &dendro.Assignment{Labels: []int{1, 1, 1, 2, 2, 0}, NumModules: 2}

	def, err := eigengene.Summarize(m, assign)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, def.Modules)
	assert.Nil(t, def.Row(0), "module 0 absent by default")

	incl, err := eigengene.Summarize(m, assign, eigengene.WithUnassigned())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, incl.Modules)
	assert.NotNil(t, incl.Row(0))
}

// TestSummarize_Guards verifies the sentinel errors.
func TestSummarize_Guards(t *testing.T) {
	m := blockMatrix(t)

	_, err := eigengene.Summarize(nil, twoModuleAssignment())
	assert.ErrorIs(t, err, eigengene.ErrNilInput)

	_, err = eigengene.Summarize(m, &dendro.Assignment{Labels: []int{1, 2}})
	assert.ErrorIs(t, err, eigengene.ErrDimensionMismatch)

	allZero := &dendro.Assignment{Labels: []int{0, 0, 0, 0, 0, 0}}
	_, err = eigengene.Summarize(m, allZero)
	assert.ErrorIs(t, err, eigengene.ErrNoModules)
}
