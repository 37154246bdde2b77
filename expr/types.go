// Package expr: core types and sentinel errors for the preprocessing stage.
package expr

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for expression-matrix construction and preprocessing.
// All are matched via errors.Is; callers never see panics on bad input.
var (
	// ErrNilData indicates a nil count or expression matrix was supplied.
	ErrNilData = errors.New("expr: nil data matrix")
	// ErrDimensionMismatch indicates identifier counts disagree with the matrix shape.
	ErrDimensionMismatch = errors.New("expr: identifier count does not match matrix shape")
	// ErrDuplicateID indicates a repeated gene or sample identifier.
	ErrDuplicateID = errors.New("expr: duplicate identifier")
	// ErrNonFinite indicates a NaN or ±Inf entry in the input counts.
	ErrNonFinite = errors.New("expr: non-finite value in input")
	// ErrInsufficientGenes indicates fewer genes than requested survived filtering.
	ErrInsufficientGenes = errors.New("expr: insufficient genes after filtering")
	// ErrInsufficientSamples indicates too few samples to estimate dispersion.
	ErrInsufficientSamples = errors.New("expr: insufficient samples")
)

// Matrix is the immutable samples × genes expression matrix consumed by all
// downstream stages. Data holds one sample per row and one gene per column;
// SampleIDs and GeneIDs are unique and index-aligned with Data.
type Matrix struct {
	// Data is samples × genes; never mutated after construction.
	Data *mat.Dense
	// SampleIDs labels the rows of Data.
	SampleIDs []string
	// GeneIDs labels the columns of Data.
	GeneIDs []string
}

// New validates ids against the shape of data and wraps them into a Matrix.
// Returns ErrNilData, ErrDimensionMismatch or ErrDuplicateID on invalid input.
func New(data *mat.Dense, sampleIDs, geneIDs []string) (*Matrix, error) {
	if data == nil {
		return nil, ErrNilData
	}
	r, c := data.Dims()
	if len(sampleIDs) != r || len(geneIDs) != c {
		return nil, ErrDimensionMismatch
	}
	if err := checkUnique(sampleIDs); err != nil {
		return nil, err
	}
	if err := checkUnique(geneIDs); err != nil {
		return nil, err
	}
	return &Matrix{Data: data, SampleIDs: sampleIDs, GeneIDs: geneIDs}, nil
}

// Samples reports the number of samples (rows).
func (m *Matrix) Samples() int {
	r, _ := m.Data.Dims()
	return r
}

// Genes reports the number of genes (columns).
func (m *Matrix) Genes() int {
	_, c := m.Data.Dims()
	return c
}

// GeneColumn returns a fresh copy of gene column j across all samples.
func (m *Matrix) GeneColumn(j int) []float64 {
	r, _ := m.Data.Dims()
	col := make([]float64, r)
	mat.Col(col, j, m.Data)
	return col
}

// SelectSamples returns a new Matrix restricted to the sample rows listed in
// keep (positions into SampleIDs, in the given order). The receiver is left
// untouched. Returns ErrDimensionMismatch when an index is out of range.
func (m *Matrix) SelectSamples(keep []int) (*Matrix, error) {
	r, c := m.Data.Dims()
	data := mat.NewDense(len(keep), c, nil)
	ids := make([]string, len(keep))
	for i, s := range keep {
		if s < 0 || s >= r {
			return nil, ErrDimensionMismatch
		}
		data.SetRow(i, mat.Row(nil, s, m.Data))
		ids[i] = m.SampleIDs[s]
	}
	return &Matrix{Data: data, SampleIDs: ids, GeneIDs: m.GeneIDs}, nil
}

// checkUnique returns ErrDuplicateID when ids contains a repeated value.
func checkUnique(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return ErrDuplicateID
		}
		seen[id] = struct{}{}
	}
	return nil
}
