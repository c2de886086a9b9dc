package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/quality"
	"github.com/geostat-labs/biascope/internal/utils"
)

var brandsOutputPath string

var brandsCmd = &cobra.Command{
	Use:   "brands <data.json>",
	Short: "Diagnose Chinese brands and the English-only sample size",
	Long: `Scans the dataset for brands with CJK names, breaks each brand's
queries down by language, and reports whether an English-only analysis
has enough data per LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, err := dataset.Load(path)
		if err != nil {
			return err
		}
		logger.Info("diagnosing brands", zap.Int("records", len(records)))

		d := quality.DiagnoseBrands(records, labels.PresenceDetector{})
		fmt.Print(d.Render())

		out := brandsOutputPath
		if out == "" {
			if err := utils.EnsureDir(cfg.OutputDir); err != nil {
				return fmt.Errorf("ensure output dir: %w", err)
			}
			out = filepath.Join(cfg.OutputDir, "brand_diagnostics.json")
		}
		if err := utils.WriteJSON(out, d); err != nil {
			return err
		}
		fmt.Printf("\n✓ Results saved to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(brandsCmd)
	brandsCmd.Flags().StringVarP(&brandsOutputPath, "output", "o", "", "path for the JSON results (default <output_dir>/brand_diagnostics.json)")
}
