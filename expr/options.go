// Package expr: functional options for Preprocess with documented defaults.
// WithX constructors panic on nonsensical parameters (programmer error);
// data-dependent failures are returned as errors by Preprocess itself.
package expr

// Preprocessing defaults.
const (
	// DefaultMinNonzeroFraction keeps genes with nonzero counts in at least
	// this fraction of samples.
	DefaultMinNonzeroFraction = 0.2
	// DefaultTopK is the number of most-variable genes retained.
	DefaultTopK = 5000
)

// Option configures Preprocess.
type Option func(*options)

type options struct {
	minNonzeroFraction float64
	topK               int
}

func defaultOptions() options {
	return options{
		minNonzeroFraction: DefaultMinNonzeroFraction,
		topK:               DefaultTopK,
	}
}

// WithMinNonzeroFraction sets the minimum fraction of samples in which a gene
// must be nonzero to survive filtering. Panics unless 0 ≤ f ≤ 1.
func WithMinNonzeroFraction(f float64) Option {
	if f < 0 || f > 1 {
		panic("expr: WithMinNonzeroFraction requires 0 <= f <= 1")
	}
	return func(o *options) { o.minNonzeroFraction = f }
}

// WithTopK sets how many genes are retained after dispersion ranking.
// Panics unless k ≥ 2 (a co-expression network needs at least two genes).
func WithTopK(k int) Option {
	if k < 2 {
		panic("expr: WithTopK requires k >= 2")
	}
	return func(o *options) { o.topK = k }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
