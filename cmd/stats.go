package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/report"
	"github.com/geostat-labs/biascope/internal/stattest"
	"github.com/geostat-labs/biascope/internal/utils"
)

var (
	statsOutputPath string
	statsQuiet      bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <data.json>",
	Short: "Run the five hypothesis tests and save the JSON results",
	Long: `Runs the study's hypothesis tests over the dataset:

  1. Chi-square on brand mention by region (with phi effect size)
  2. Two-sample t-test on sentiment by region (with Cohen's d and 95% CI)
  3. Chi-square on brand mention across LLMs in recommendation queries
  4. One-way ANOVA on sentiment across query types (with eta squared)
  5. Logistic regression of mention on region and query type`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		logger.Info("dataset loaded", zap.String("file", path), zap.Int("records", len(records)))

		engine := stattest.NewEngine(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), cfg.SignificanceLevel, logger)
		suite, err := engine.RunAll(records)
		if err != nil {
			return fmt.Errorf("run tests: %w", err)
		}

		if !statsQuiet {
			fmt.Print(report.RenderSuite(suite))
		}

		out := statsOutputPath
		if out == "" {
			if err := utils.EnsureDir(cfg.OutputDir); err != nil {
				return fmt.Errorf("ensure output dir: %w", err)
			}
			out = filepath.Join(cfg.OutputDir, "statistical_tests.json")
		}
		if err := utils.WriteJSON(out, suite); err != nil {
			return err
		}
		fmt.Printf("\n✓ Results saved to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsOutputPath, "output", "o", "", "path for the JSON results (default <output_dir>/statistical_tests.json)")
	statsCmd.Flags().BoolVarP(&statsQuiet, "quiet", "q", false, "suppress the console report")
}
