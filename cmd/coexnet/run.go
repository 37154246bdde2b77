package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/dataset"
	"github.com/lumigen/coexnet/pipeline"
)

// runPipeline loads the inputs, executes the pipeline and writes the four
// report files.
func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := pipeline.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = pipeline.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if topGenes > 0 {
		cfg.TopGenes = topGenes
	}
	if minClusterSize > 0 {
		cfg.MinClusterSize = minClusterSize
	}

	counts, geneIDs, sampleIDs, err := readExpression(exprPath)
	if err != nil {
		return err
	}
	logger.Info("loaded expression matrix",
		zap.String("path", exprPath),
		zap.Int("genes", len(geneIDs)),
		zap.Int("samples", len(sampleIDs)))

	var traits map[string]float64
	if traitsPath != "" {
		traits, err = readTraits(traitsPath)
		if err != nil {
			return err
		}
		logger.Info("loaded trait table",
			zap.String("path", traitsPath),
			zap.Int("entries", len(traits)))
	}

	res, err := pipeline.Run(cmd.Context(), counts, geneIDs, sampleIDs, traits, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("pipeline finished", zap.String("summary", pipeline.Describe(res)))

	return writeReports(res)
}

func readExpression(path string) (counts *mat.Dense, geneIDs, sampleIDs []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening expression table: %w", err)
	}
	defer f.Close()
	return dataset.ReadExpression(f)
}

func readTraits(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trait table: %w", err)
	}
	defer f.Close()
	return dataset.ReadTraits(f)
}

// writeReports emits the four CSV artifacts next to the output prefix.
// Trait-dependent reports are skipped when absent.
func writeReports(res *pipeline.Result) error {
	if err := writeFile(outPrefix+"_modules.csv", func(f *os.File) error {
		return dataset.WriteModules(f, res.Expr.GeneIDs, res.Assignment)
	}); err != nil {
		return err
	}
	if err := writeFile(outPrefix+"_eigengenes.csv", func(f *os.File) error {
		return dataset.WriteEigengenes(f, res.Eigengenes)
	}); err != nil {
		return err
	}
	if err := writeFile(outPrefix+"_membership.csv", func(f *os.File) error {
		return dataset.WriteMembership(f, res.Expr.GeneIDs, res.Eigengenes.Modules, res.Membership)
	}); err != nil {
		return err
	}
	if res.GeneSignificance == nil {
		logger.Info("no binary trait, skipping significance report")
		return nil
	}
	return writeFile(outPrefix+"_significance.csv", func(f *os.File) error {
		return dataset.WriteSignificance(f, res.GeneSignificance, res.ModuleSignificance)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote report", zap.String("path", path))
	return f.Close()
}
