package cmd

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/quality"
	"github.com/geostat-labs/biascope/internal/utils"
)

var (
	valOutputPath string
	valSampleSize int
	valSeed       int64
)

var validateCmd = &cobra.Command{
	Use:   "validate <data.json>",
	Short: "Validate the query language used for each LLM",
	Long: `Samples queries per LLM and classifies their language, then reports
whether query language confounds the regional comparison.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}

		sampleSize := valSampleSize
		if !cmd.Flags().Changed("sample-size") {
			sampleSize = cfg.SampleSize
		}
		seed := valSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.RandomSeed
		}
		logger.Info("validating query languages",
			zap.Int("records", len(records)),
			zap.Int("sample_size", sampleSize),
			zap.Int64("seed", seed))

		det := labels.RatioDetector{Threshold: cfg.CJKRatioThreshold}
		rng := rand.New(rand.NewSource(seed))
		v := quality.ValidateQueryLanguages(records, sampleSize, rng, det)
		fmt.Print(v.Render())

		out := valOutputPath
		if out == "" {
			if err := utils.EnsureDir(cfg.OutputDir); err != nil {
				return fmt.Errorf("ensure output dir: %w", err)
			}
			out = filepath.Join(cfg.OutputDir, "language_validation.json")
		}
		if err := utils.WriteJSON(out, v); err != nil {
			return err
		}
		fmt.Printf("\n✓ Results saved to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&valOutputPath, "output", "o", "", "path for the JSON results (default <output_dir>/language_validation.json)")
	validateCmd.Flags().IntVar(&valSampleSize, "sample-size", 100, "number of records to sample (0 = all)")
	validateCmd.Flags().Int64Var(&valSeed, "seed", 42, "random seed for sampling")
}
