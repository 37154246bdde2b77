// Package trait: types and sentinel errors for trait association.
package trait

import "errors"

// Sentinel errors for trait association.
var (
	// ErrNilInput indicates a nil matrix, vector or table.
	ErrNilInput = errors.New("trait: nil input")
	// ErrNoSamplesMatched indicates the trait table shares no sample with
	// the expression matrix.
	ErrNoSamplesMatched = errors.New("trait: no samples matched")
	// ErrTraitNotBinary indicates the two-sample test was asked for a
	// trait with a number of distinct values other than two.
	ErrTraitNotBinary = errors.New("trait: trait is not binary")
	// ErrGroupTooSmall indicates a trait group with fewer than two samples.
	ErrGroupTooSmall = errors.New("trait: each trait group needs at least two samples")
	// ErrDimensionMismatch indicates misaligned lengths between inputs.
	ErrDimensionMismatch = errors.New("trait: dimension mismatch")
)

// minP floors p-values so that −log10(p) stays finite in downstream
// aggregation.
const minP = 1e-300

// Vector is a per-sample trait, index-aligned with an expression matrix.
// It is never mutated by the pipeline.
type Vector struct {
	// Values holds one trait value per matched sample.
	Values []float64
	// SampleIDs labels Values, in expression-matrix order.
	SampleIDs []string
}

// Result is the per-gene significance report.
type Result struct {
	// GeneID names the gene.
	GeneID string
	// P is the Welch-test p-value (floored at 1e-300).
	P float64
	// LogP is −log10(P), the quantity aggregated per module.
	LogP float64
	// EffectSize is Cohen's d between the trait groups.
	EffectSize float64
}
