package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumigen/coexnet/adjacency"
	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/expr"
)

// ErrBadConfig indicates a configuration value outside its documented range.
var ErrBadConfig = errors.New("pipeline: invalid configuration")

// Config collects every tunable of the pipeline. The branch-cut parameters
// are empirically tuned per dataset, so all of them are configuration
// rather than constants. Zero values are replaced by the documented
// defaults during validation.
type Config struct {
	// MinNonzeroFraction keeps genes nonzero in at least this fraction of
	// samples (default 0.2).
	MinNonzeroFraction float64 `yaml:"min_nonzero_fraction"`
	// TopGenes is the number of most-variable genes retained (default 5000).
	TopGenes int `yaml:"top_genes"`
	// Estimator selects the correlation estimator: "bicor" (default) or
	// "pearson".
	Estimator string `yaml:"estimator"`
	// Workers bounds row-level parallelism; 0 means one worker per CPU.
	Workers int `yaml:"workers"`
	// RsqCutoff is the scale-free fit quality required of the
	// soft-threshold search (default 0.9).
	RsqCutoff float64 `yaml:"rsq_cutoff"`
	// MaxBeta is the largest soft-threshold exponent tried (default 20).
	MaxBeta int `yaml:"max_beta"`
	// UseTOM refines adjacency into topological overlap before clustering
	// (default true).
	UseTOM *bool `yaml:"use_tom"`
	// MinClusterSize is the smallest accepted module (default 30).
	MinClusterSize int `yaml:"min_cluster_size"`
	// DeepSplit sets branch-cut sensitivity, 0..4 (default 2).
	DeepSplit *int `yaml:"deep_split"`
	// CutHeight overrides the automatic static cut; 0 keeps the default
	// 0.99 × root height.
	CutHeight float64 `yaml:"cut_height"`
	// IncludeUnassigned also summarizes module 0 (default false).
	IncludeUnassigned bool `yaml:"include_unassigned"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	tom := true
	ds := dendro.DefaultDeepSplit
	return Config{
		MinNonzeroFraction: expr.DefaultMinNonzeroFraction,
		TopGenes:           expr.DefaultTopK,
		Estimator:          "bicor",
		RsqCutoff:          adjacency.DefaultRsqCutoff,
		MaxBeta:            20,
		UseTOM:             &tom,
		MinClusterSize:     dendro.DefaultMinClusterSize,
		DeepSplit:          &ds,
	}
}

// LoadConfig reads a YAML file over the defaults, so a partial file only
// overrides what it mentions.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pipeline: reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("pipeline: parsing config: %w", err)
	}
	return cfg, nil
}

// validate fills zero values with defaults and rejects out-of-range
// settings.
func (c *Config) validate() error {
	def := DefaultConfig()
	if c.MinNonzeroFraction == 0 {
		c.MinNonzeroFraction = def.MinNonzeroFraction
	}
	if c.TopGenes == 0 {
		c.TopGenes = def.TopGenes
	}
	if c.Estimator == "" {
		c.Estimator = def.Estimator
	}
	if c.RsqCutoff == 0 {
		c.RsqCutoff = def.RsqCutoff
	}
	if c.MaxBeta == 0 {
		c.MaxBeta = def.MaxBeta
	}
	if c.UseTOM == nil {
		c.UseTOM = def.UseTOM
	}
	if c.MinClusterSize == 0 {
		c.MinClusterSize = def.MinClusterSize
	}
	if c.DeepSplit == nil {
		c.DeepSplit = def.DeepSplit
	}

	switch {
	case c.MinNonzeroFraction < 0 || c.MinNonzeroFraction > 1:
		return fmt.Errorf("%w: min_nonzero_fraction %v outside [0,1]", ErrBadConfig, c.MinNonzeroFraction)
	case c.TopGenes < 2:
		return fmt.Errorf("%w: top_genes %d below 2", ErrBadConfig, c.TopGenes)
	case c.Estimator != "bicor" && c.Estimator != "pearson":
		return fmt.Errorf("%w: unknown estimator %q", ErrBadConfig, c.Estimator)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative workers", ErrBadConfig)
	case c.RsqCutoff <= 0 || c.RsqCutoff >= 1:
		return fmt.Errorf("%w: rsq_cutoff %v outside (0,1)", ErrBadConfig, c.RsqCutoff)
	case c.MaxBeta < 1:
		return fmt.Errorf("%w: max_beta %d below 1", ErrBadConfig, c.MaxBeta)
	case c.MinClusterSize < 1:
		return fmt.Errorf("%w: min_cluster_size %d below 1", ErrBadConfig, c.MinClusterSize)
	case *c.DeepSplit < 0 || *c.DeepSplit > dendro.MaxDeepSplit:
		return fmt.Errorf("%w: deep_split %d outside 0..%d", ErrBadConfig, *c.DeepSplit, dendro.MaxDeepSplit)
	case c.CutHeight < 0:
		return fmt.Errorf("%w: negative cut_height", ErrBadConfig)
	}
	return nil
}
