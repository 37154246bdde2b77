// Package bicor: types, sentinel errors and functional options for the
// similarity estimator.
package bicor

import (
	"errors"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for similarity estimation.
var (
	// ErrNilMatrix indicates a nil expression matrix.
	ErrNilMatrix = errors.New("bicor: nil expression matrix")
	// ErrTooFewGenes indicates fewer than two genes were supplied.
	ErrTooFewGenes = errors.New("bicor: need at least two genes")
	// ErrTooFewSamples indicates fewer than three samples were supplied.
	ErrTooFewSamples = errors.New("bicor: need at least three samples")
)

// Estimator selects the correlation estimator used for every gene pair.
type Estimator int

const (
	// BiweightMidcorrelation down-weights outlier samples with Tukey's
	// biweight and is the default.
	BiweightMidcorrelation Estimator = iota
	// Pearson is the classic product-moment correlation.
	Pearson
)

// Similarity is the genes × genes similarity matrix: |correlation| per pair,
// unit diagonal, values in [0,1].
type Similarity struct {
	// Sym holds the symmetric similarity values.
	Sym *mat.SymDense
	// GeneIDs labels rows/columns of Sym.
	GeneIDs []string
	// ZeroVariance lists gene indices whose profiles had zero variance;
	// their off-diagonal similarities were substituted with 0. Recorded for
	// the caller to surface as a data-quality warning, never fatal.
	ZeroVariance []int
}

// Option configures Correlate.
type Option func(*options)

type options struct {
	estimator Estimator
	workers   int
}

func defaultOptions() options {
	return options{
		estimator: BiweightMidcorrelation,
		workers:   runtime.NumCPU(),
	}
}

// WithEstimator selects the correlation estimator. Panics on unknown values.
func WithEstimator(e Estimator) Option {
	if e != BiweightMidcorrelation && e != Pearson {
		panic("bicor: WithEstimator requires a known estimator")
	}
	return func(o *options) { o.estimator = e }
}

// WithWorkers bounds the number of concurrent row workers. Panics unless
// n ≥ 1. The result does not depend on n.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("bicor: WithWorkers requires n >= 1")
	}
	return func(o *options) { o.workers = n }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
