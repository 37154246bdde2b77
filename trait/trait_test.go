package trait_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/eigengene"
	"github.com/lumigen/coexnet/expr"
	"github.com/lumigen/coexnet/trait"
)

// TestAlign_DropsUnmatched verifies join semantics: order follows the
// expression matrix, unmatched samples are dropped, extras ignored.
func TestAlign_DropsUnmatched(t *testing.T) {
	table := map[string]float64{"s3": 1, "s1": 0, "ghost": 7}
	tv, keep, err := trait.Align([]string{"s1", "s2", "s3"}, table)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, keep, "positions of matched samples")
	assert.Equal(t, []float64{0, 1}, tv.Values, "values in matrix order")
	assert.Equal(t, []string{"s1", "s3"}, tv.SampleIDs)
	assert.Equal(t, 1, len([]string{"s1", "s2", "s3"})-len(keep), "one sample dropped")
}

// TestAlign_NoMatchIsFatal verifies the zero-overlap sentinel.
func TestAlign_NoMatchIsFatal(t *testing.T) {
	_, _, err := trait.Align([]string{"s1"}, map[string]float64{"x": 1})
	assert.ErrorIs(t, err, trait.ErrNoSamplesMatched)

	_, _, err = trait.Align(nil, nil)
	assert.ErrorIs(t, err, trait.ErrNilInput)
}

// sixSample builds a 6-sample × 3-gene matrix: g1 separates the two trait
// groups sharply, g2 is pure noise around a constant, g3 is flat.
func sixSample(t *testing.T) *expr.Matrix {
	t.Helper()
	data := mat.NewDense(6, 3, []float64{
		1.0, 5.1, 2,
		1.2, 4.9, 2,
		0.9, 5.0, 2,
		9.0, 5.2, 2,
		9.3, 4.8, 2,
		8.8, 5.0, 2,
	})
	m, err := expr.New(data,
		[]string{"s1", "s2", "s3", "s4", "s5", "s6"},
		[]string{"g1", "g2", "g3"})
	require.NoError(t, err)
	return m
}

func binaryTrait() *trait.Vector {
	return &trait.Vector{
		Values:    []float64{0, 0, 0, 1, 1, 1},
		SampleIDs: []string{"s1", "s2", "s3", "s4", "s5", "s6"},
	}
}

// TestGeneSignificance_SeparatesSignalFromNoise verifies the Welch test
// ranks the discriminating gene far above the noise gene.
func TestGeneSignificance_SeparatesSignalFromNoise(t *testing.T) {
	gs, err := trait.GeneSignificance(sixSample(t), binaryTrait())
	require.NoError(t, err)
	require.Len(t, gs, 3)

	assert.Less(t, gs[0].P, 0.01, "group means 1 vs 9 must be significant")
	assert.Greater(t, gs[1].P, 0.3, "noise gene must not be significant")
	assert.Greater(t, gs[0].LogP, gs[1].LogP)
	assert.Less(t, gs[0].EffectSize, 0.0, "group A mean below group B mean")
	assert.Greater(t, math.Abs(gs[0].EffectSize), math.Abs(gs[1].EffectSize))
}

// TestGeneSignificance_FlatGeneRecovered verifies a zero-variance gene is
// handled locally: equal means, p = 1, zero effect.
func TestGeneSignificance_FlatGeneRecovered(t *testing.T) {
	gs, err := trait.GeneSignificance(sixSample(t), binaryTrait())
	require.NoError(t, err)

	flat := gs[2]
	assert.Equal(t, 1.0, flat.P)
	assert.Equal(t, 0.0, flat.LogP)
	assert.Equal(t, 0.0, flat.EffectSize)
}

// TestGeneSignificance_Guards verifies trait arity and group-size errors.
func TestGeneSignificance_Guards(t *testing.T) {
	m := sixSample(t)

	tri := &trait.Vector{Values: []float64{0, 1, 2, 0, 1, 2}}
	_, err := trait.GeneSignificance(m, tri)
	assert.ErrorIs(t, err, trait.ErrTraitNotBinary)

	lop := &trait.Vector{Values: []float64{0, 1, 1, 1, 1, 1}}
	_, err = trait.GeneSignificance(m, lop)
	assert.ErrorIs(t, err, trait.ErrGroupTooSmall)

	short := &trait.Vector{Values: []float64{0, 1}}
	_, err = trait.GeneSignificance(m, short)
	assert.ErrorIs(t, err, trait.ErrDimensionMismatch)
}

// TestModuleSignificance_MeansLogP verifies per-module aggregation,
// including the unassigned pool.
func TestModuleSignificance_MeansLogP(t *testing.T) {
	gs := []trait.Result{
		{GeneID: "g1", LogP: 4},
		{GeneID: "g2", LogP: 2},
		{GeneID: "g3", LogP: 1},
	}
	assign := &dendro.Assignment{Labels: []int{1, 1, 0}, NumModules: 1}

	ms, err := trait.ModuleSignificance(gs, assign)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, ms[1], 1e-12, "mean of 4 and 2")
	assert.InDelta(t, 1.0, ms[0], 1e-12, "unassigned pool aggregates too")

	_, err = trait.ModuleSignificance(gs[:2], assign)
	assert.ErrorIs(t, err, trait.ErrDimensionMismatch)
}

// TestModuleMembership_RangeAndStructure verifies membership lies in [0,1],
// member genes score high in their own module, and a flat gene gets the
// neutral membership 0.
func TestModuleMembership_RangeAndStructure(t *testing.T) {
	m := sixSample(t)
	assign := &dendro.Assignment{Labels: []int{1, 2, 0}, NumModules: 2}
	set, err := eigengene.Summarize(m, assign)
	require.NoError(t, err)

	mm, err := trait.ModuleMembership(m, set)
	require.NoError(t, err)

	r, c := mm.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.GreaterOrEqual(t, mm.At(i, j), 0.0)
			assert.LessOrEqual(t, mm.At(i, j), 1.0)
		}
	}
	assert.Greater(t, mm.At(0, 0), 0.99, "g1 defines module 1's eigengene")
	assert.Equal(t, 0.0, mm.At(2, 0), "flat gene gets neutral membership")
	assert.Equal(t, 0.0, mm.At(2, 1))
}
