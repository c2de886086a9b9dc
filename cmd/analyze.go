package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/aggregate"
	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/report"
	"github.com/geostat-labs/biascope/internal/utils"
)

var (
	anaOutputPath string
	anaQuiet      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <data.json>",
	Short: "Run the descriptive bias analysis and save the JSON report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		logger.Info("dataset loaded", zap.String("file", path), zap.Int("records", len(records)))

		agg := aggregate.New(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), logger)
		a, err := report.BuildAnalysis(path, records, agg, cfg.SignificanceLevel)
		if err != nil {
			return fmt.Errorf("build analysis: %w", err)
		}

		if !anaQuiet {
			fmt.Print(report.RenderAnalysis(a))
		}

		out := anaOutputPath
		if out == "" {
			if err := utils.EnsureDir(cfg.OutputDir); err != nil {
				return fmt.Errorf("ensure output dir: %w", err)
			}
			out = filepath.Join(cfg.OutputDir, "cultural_bias_report.json")
		}
		if err := utils.WriteJSON(out, a); err != nil {
			return err
		}
		fmt.Printf("\n✓ Results saved to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "path for the JSON report (default <output_dir>/cultural_bias_report.json)")
	analyzeCmd.Flags().BoolVarP(&anaQuiet, "quiet", "q", false, "suppress the console report")
}
