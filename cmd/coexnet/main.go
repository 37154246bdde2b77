// Command coexnet runs the weighted co-expression network pipeline on a
// CSV count table: preprocessing, robust similarity, soft-threshold
// network construction, dynamic module detection, eigengene summarization
// and trait association, writing the four reports next to the given
// output prefix.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags.
	verbose    bool
	exprPath   string
	traitsPath string
	configPath string
	outPrefix  string

	// Per-run overrides; 0 keeps the config file / default value.
	topGenes       int
	minClusterSize int

	// Logger, initialized by the persistent pre-run.
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "coexnet",
	Short: "coexnet - weighted gene co-expression network analysis",
	Long: `coexnet builds a weighted gene co-expression network from a raw
count matrix: it filters and log-transforms the counts, estimates robust
pairwise similarities, soft-thresholds them into a scale-free network,
detects modules with a dynamic branch cut, summarizes each module by its
eigengene, and relates genes and modules to an external sample trait.

Outputs: <out>_modules.csv, <out>_eigengenes.csv, <out>_significance.csv,
<out>_membership.csv.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPipeline,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&exprPath, "expr", "", "expression count CSV (genes × samples)")
	rootCmd.Flags().StringVar(&traitsPath, "traits", "", "trait CSV (sample,value), optional")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML pipeline configuration, optional")
	rootCmd.Flags().StringVar(&outPrefix, "out", "coexnet", "output file prefix")
	rootCmd.Flags().IntVar(&topGenes, "top-genes", 0, "override: most-variable genes to keep")
	rootCmd.Flags().IntVar(&minClusterSize, "min-cluster-size", 0, "override: smallest accepted module")
	_ = rootCmd.MarkFlagRequired("expr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
