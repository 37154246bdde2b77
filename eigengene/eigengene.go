package eigengene

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/expr"
)

// Sentinel errors for eigengene summarization.
var (
	// ErrNilInput indicates a nil expression matrix or assignment.
	ErrNilInput = errors.New("eigengene: nil expression matrix or assignment")
	// ErrDimensionMismatch indicates the assignment length differs from the
	// gene count.
	ErrDimensionMismatch = errors.New("eigengene: assignment does not match gene count")
	// ErrNoModules indicates there is no module to summarize.
	ErrNoModules = errors.New("eigengene: no modules to summarize")
	// ErrSVDFailed indicates the singular value decomposition did not
	// converge.
	ErrSVDFailed = errors.New("eigengene: svd failed to converge")
)

// Set holds one eigengene per summarized module.
type Set struct {
	// Modules lists the summarized module ids in ascending order.
	Modules []int
	// Data is modules × samples; row i is the eigengene of Modules[i].
	Data *mat.Dense
	// SampleIDs labels the columns of Data.
	SampleIDs []string
}

// Row returns the eigengene of module id, or nil when the id was not
// summarized.
func (s *Set) Row(id int) []float64 {
	for i, m := range s.Modules {
		if m == id {
			return mat.Row(nil, i, s.Data)
		}
	}
	return nil
}

// Option configures Summarize.
type Option func(*options)

type options struct {
	includeUnassigned bool
}

// WithUnassigned also summarizes module 0, the unassigned pool.
func WithUnassigned() Option {
	return func(o *options) { o.includeUnassigned = true }
}

// Summarize computes one eigengene per module of assign.
//
// Algorithm (per module, ascending id order):
//  1. Extract the samples × members submatrix of m.
//  2. Center every gene column.
//  3. Thin SVD; the eigengene is the first left singular vector.
//  4. Orient the sign so that the majority of member genes correlate
//     positively with the eigengene (ties keep the SVD's sign).
//
// A single-gene module yields that gene's centered profile scaled to unit
// norm; a module with no variance at all yields the zero vector.
//
// Errors: ErrNilInput, ErrDimensionMismatch, ErrNoModules, ErrSVDFailed.
func Summarize(m *expr.Matrix, assign *dendro.Assignment, opts ...Option) (*Set, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if m == nil || m.Data == nil || assign == nil {
		return nil, ErrNilInput
	}
	nSamples, nGenes := m.Data.Dims()
	if len(assign.Labels) != nGenes {
		return nil, ErrDimensionMismatch
	}

	ids := moduleIDs(assign, o.includeUnassigned)
	if len(ids) == 0 {
		return nil, ErrNoModules
	}

	out := mat.NewDense(len(ids), nSamples, nil)
	for row, id := range ids {
		members := assign.Members(id)
		eg, err := summarizeOne(m, members, nSamples)
		if err != nil {
			return nil, err
		}
		out.SetRow(row, eg)
	}
	return &Set{
		Modules:   ids,
		Data:      out,
		SampleIDs: append([]string(nil), m.SampleIDs...),
	}, nil
}

// moduleIDs lists the ids to summarize in ascending order.
func moduleIDs(assign *dendro.Assignment, includeUnassigned bool) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, label := range assign.Labels {
		if label == dendro.Unassigned && !includeUnassigned {
			continue
		}
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			ids = append(ids, label)
		}
	}
	sort.Ints(ids)
	return ids
}

// summarizeOne computes the eigengene of a single member set.
func summarizeOne(m *expr.Matrix, members []int, nSamples int) ([]float64, error) {
	// Column-centered samples × members submatrix.
	sub := mat.NewDense(nSamples, len(members), nil)
	for c, g := range members {
		col := m.GeneColumn(g)
		mean := floats.Sum(col) / float64(nSamples)
		for r, v := range col {
			sub.Set(r, c, v-mean)
		}
	}

	// Degenerate case: one member yields its centered, unit-norm profile.
	if len(members) == 1 {
		eg := mat.Col(nil, 0, sub)
		norm := math.Sqrt(floats.Dot(eg, eg))
		if norm > 0 {
			floats.Scale(1/norm, eg)
		}
		return eg, nil
	}

	var svd mat.SVD
	if ok := svd.Factorize(sub, mat.SVDThin); !ok {
		return nil, ErrSVDFailed
	}
	var u mat.Dense
	svd.UTo(&u)
	eg := mat.Col(nil, 0, &u)

	// No variance at all: report the zero profile rather than an
	// arbitrary basis vector.
	if sv := svd.Values(nil); sv[0] == 0 {
		return make([]float64, nSamples), nil
	}

	// Majority-positive sign orientation. Columns are centered, so the
	// correlation sign of member c equals the sign of its dot product
	// with the eigengene.
	positive := 0
	for c := range members {
		col := mat.Col(nil, c, sub)
		if floats.Dot(col, eg) > 0 {
			positive++
		}
	}
	if 2*positive < len(members) {
		floats.Scale(-1, eg)
	}
	return eg, nil
}
