// Package dendro: functional options and documented defaults for the
// dynamic branch cut. The branch-cut tunables are empirically chosen per
// dataset, so all of them are configuration rather than constants.
package dendro

// Branch-cut defaults.
const (
	// DefaultMinClusterSize is the smallest leaf count a branch needs to
	// become a module.
	DefaultMinClusterSize = 30
	// DefaultDeepSplit is the medium split sensitivity.
	DefaultDeepSplit = 2
	// MaxDeepSplit bounds the split sensitivity scale.
	MaxDeepSplit = 4
	// DefaultCutFraction places the automatic static cut just below the
	// root merge, at this fraction of the maximum merge height.
	DefaultCutFraction = 0.99
)

// gapFractions maps DeepSplit 0..4 to the minimum separation, as a
// fraction of the cut height, required between a merge and the core
// heights of its children before the merge is split. Higher DeepSplit
// demands less separation and therefore splits more aggressively.
var gapFractions = [MaxDeepSplit + 1]float64{0.50, 0.35, 0.20, 0.10, 0.04}

// Option configures CutDynamic.
type Option func(*options)

type options struct {
	minClusterSize int
	deepSplit      int
	cutHeight      float64 // 0 means automatic (DefaultCutFraction · max)
}

func defaultOptions() options {
	return options{
		minClusterSize: DefaultMinClusterSize,
		deepSplit:      DefaultDeepSplit,
	}
}

// WithMinClusterSize sets the smallest accepted module size.
// Panics unless k ≥ 1.
func WithMinClusterSize(k int) Option {
	if k < 1 {
		panic("dendro: WithMinClusterSize requires k >= 1")
	}
	return func(o *options) { o.minClusterSize = k }
}

// WithDeepSplit sets the split sensitivity on the 0..4 scale; 0 splits
// conservatively, 4 aggressively. Panics outside the scale.
func WithDeepSplit(level int) Option {
	if level < 0 || level > MaxDeepSplit {
		panic("dendro: WithDeepSplit requires 0 <= level <= 4")
	}
	return func(o *options) { o.deepSplit = level }
}

// WithCutHeight overrides the automatic static cut height. Panics unless
// h > 0; heights above the root merge keep the whole tree as one branch.
func WithCutHeight(h float64) Option {
	if h <= 0 {
		panic("dendro: WithCutHeight requires h > 0")
	}
	return func(o *options) { o.cutHeight = h }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
