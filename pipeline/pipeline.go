package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/adjacency"
	"github.com/lumigen/coexnet/bicor"
	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/eigengene"
	"github.com/lumigen/coexnet/expr"
	"github.com/lumigen/coexnet/trait"
)

// Result bundles every artifact of one pipeline run. Trait-dependent
// fields are nil when no trait table was supplied or the trait was not
// binary.
type Result struct {
	// Expr is the preprocessed samples × genes matrix the network is
	// built from (already restricted to trait-matched samples).
	Expr *expr.Matrix
	// Pick records the soft-threshold search outcome.
	Pick *adjacency.Pick
	// Assignment maps every gene to its module.
	Assignment *dendro.Assignment
	// Eigengenes holds one representative profile per module.
	Eigengenes *eigengene.Set
	// Trait is the aligned trait vector, nil without a trait table.
	Trait *trait.Vector
	// DroppedSamples counts expression samples without a trait entry.
	DroppedSamples int
	// GeneSignificance is the per-gene Welch-test report, nil when the
	// trait is absent or not binary.
	GeneSignificance []trait.Result
	// ModuleSignificance is the mean −log10(p) per module id.
	ModuleSignificance map[int]float64
	// Membership is the genes × modules fuzzy membership matrix.
	Membership *mat.Dense
}

// Run executes the full linear pipeline on a raw genes × samples count
// matrix. traits may be nil, in which case the association stage is
// skipped. logger may be nil (no logging). ctx is consulted between
// stages; the stages themselves are bounded batch computations.
//
// Fatal errors surface immediately with no partial Result. The three
// recoverable data-quality conditions are logged at warn level and the
// pipeline continues.
func Run(ctx context.Context, counts *mat.Dense, geneIDs, sampleIDs []string,
	traits map[string]float64, cfg Config, logger *zap.Logger) (*Result, error) {

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	res := &Result{}

	// Trait alignment first, so the whole network is built on the matched
	// sample set. Without a trait table every sample participates.
	if traits != nil {
		tv, keep, err := trait.Align(sampleIDs, traits)
		if err != nil {
			return nil, err
		}
		res.Trait = tv
		res.DroppedSamples = len(sampleIDs) - len(keep)
		if res.DroppedSamples > 0 {
			logger.Warn("dropped samples without trait entry",
				zap.Int("dropped", res.DroppedSamples),
				zap.Int("matched", len(keep)))
			counts, sampleIDs = selectColumns(counts, sampleIDs, keep)
		}
	}

	// Preprocessing.
	opts := []expr.Option{
		expr.WithMinNonzeroFraction(cfg.MinNonzeroFraction),
		expr.WithTopK(cfg.TopGenes),
	}
	m, err := expr.Preprocess(counts, geneIDs, sampleIDs, opts...)
	if err != nil {
		return nil, err
	}
	res.Expr = m
	logger.Info("preprocessed expression matrix",
		zap.Int("samples", m.Samples()), zap.Int("genes", m.Genes()))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Similarity.
	simOpts := []bicor.Option{bicor.WithEstimator(estimator(cfg.Estimator))}
	if cfg.Workers > 0 {
		simOpts = append(simOpts, bicor.WithWorkers(cfg.Workers))
	}
	sim, err := bicor.Correlate(m, simOpts...)
	if err != nil {
		return nil, err
	}
	if n := len(sim.ZeroVariance); n > 0 {
		logger.Warn("zero-variance genes got neutral similarity",
			zap.Int("genes", n))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Soft threshold and adjacency.
	grid := make([]float64, cfg.MaxBeta)
	for i := range grid {
		grid[i] = float64(i + 1)
	}
	pick, err := adjacency.PickSoftThreshold(sim.Sym,
		adjacency.WithCandidates(grid),
		adjacency.WithRsqCutoff(cfg.RsqCutoff))
	if err != nil {
		return nil, err
	}
	res.Pick = pick
	if !pick.Achieved {
		logger.Warn("scale-free fit not achieved, using best candidate",
			zap.Float64("beta", pick.Beta), zap.Float64("rsq", pick.Rsq))
	} else {
		logger.Info("soft threshold selected",
			zap.Float64("beta", pick.Beta), zap.Float64("rsq", pick.Rsq))
	}
	adj, err := adjacency.Build(sim.Sym, pick.Beta)
	if err != nil {
		return nil, err
	}
	network := adj
	if *cfg.UseTOM {
		tomOpts := []adjacency.Option{}
		if cfg.Workers > 0 {
			tomOpts = append(tomOpts, adjacency.WithWorkers(cfg.Workers))
		}
		network = adjacency.TopologicalOverlap(adj, tomOpts...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Module detection.
	dend, err := dendro.Cluster(adjacency.Dissimilarity(network.Sym))
	if err != nil {
		return nil, err
	}
	cutOpts := []dendro.Option{
		dendro.WithMinClusterSize(cfg.MinClusterSize),
		dendro.WithDeepSplit(*cfg.DeepSplit),
	}
	if cfg.CutHeight > 0 {
		cutOpts = append(cutOpts, dendro.WithCutHeight(cfg.CutHeight))
	}
	assign, err := dendro.CutDynamic(dend, cutOpts...)
	if err != nil {
		return nil, err
	}
	res.Assignment = assign
	logger.Info("modules detected",
		zap.Int("modules", assign.NumModules),
		zap.Int("unassigned", len(assign.Members(dendro.Unassigned))))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Eigengenes.
	var egOpts []eigengene.Option
	if cfg.IncludeUnassigned {
		egOpts = append(egOpts, eigengene.WithUnassigned())
	}
	set, err := eigengene.Summarize(m, assign, egOpts...)
	if err != nil {
		return nil, err
	}
	res.Eigengenes = set

	// Association: membership always, the two-sample test only for a
	// binary trait.
	res.Membership, err = trait.ModuleMembership(m, set)
	if err != nil {
		return nil, err
	}
	if res.Trait != nil {
		gs, err := trait.GeneSignificance(m, res.Trait)
		switch {
		case errors.Is(err, trait.ErrTraitNotBinary):
			logger.Warn("trait is not binary, skipping significance test")
		case err != nil:
			return nil, err
		default:
			res.GeneSignificance = gs
			res.ModuleSignificance, err = trait.ModuleSignificance(gs, assign)
			if err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// estimator maps the config string to the bicor estimator enum; validate
// already rejected unknown names.
func estimator(name string) bicor.Estimator {
	if name == "pearson" {
		return bicor.Pearson
	}
	return bicor.BiweightMidcorrelation
}

// selectColumns restricts a genes × samples matrix to the sample columns
// listed in keep.
func selectColumns(counts *mat.Dense, sampleIDs []string, keep []int) (*mat.Dense, []string) {
	r, _ := counts.Dims()
	out := mat.NewDense(r, len(keep), nil)
	ids := make([]string, len(keep))
	for j, s := range keep {
		ids[j] = sampleIDs[s]
		for i := 0; i < r; i++ {
			out.Set(i, j, counts.At(i, s))
		}
	}
	return out, ids
}

// Describe renders a short human-readable run summary for CLI output.
func Describe(res *Result) string {
	msg := fmt.Sprintf("%d samples × %d genes, beta=%g (R²=%.3f), %d modules",
		res.Expr.Samples(), res.Expr.Genes(),
		res.Pick.Beta, res.Pick.Rsq, res.Assignment.NumModules)
	if n := len(res.Assignment.Members(dendro.Unassigned)); n > 0 {
		msg += fmt.Sprintf(", %d unassigned", n)
	}
	return msg
}
