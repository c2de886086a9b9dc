package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/aggregate"
	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/quality"
	"github.com/geostat-labs/biascope/internal/stattest"
	"github.com/geostat-labs/biascope/internal/utils"
)

var subsetOutputPath string

var subsetCmd = &cobra.Command{
	Use:   "subset <data.json>",
	Short: "Extract the English-only record subset",
	Long: `Filters out every record whose query contains CJK characters, writes
the remaining records to a new JSON file preserving all original fields, and
reruns the region mention and sentiment tests over the subset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, raw, err := dataset.LoadRaw(path)
		if err != nil {
			return err
		}

		kept, keptRaw := quality.FilterEnglish(records, raw, labels.PresenceDetector{})
		logger.Info("english subset filtered",
			zap.Int("records", len(records)),
			zap.Int("kept", len(kept)))

		out := subsetOutputPath
		if out == "" {
			out = "english_subset.json"
		}
		b, err := json.MarshalIndent(keptRaw, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal subset: %w", err)
		}
		if err := utils.SafeWriteFile(out, b); err != nil {
			return err
		}

		pct := 0.0
		if len(records) > 0 {
			pct = float64(len(kept)) / float64(len(records)) * 100
		}
		fmt.Printf("✓ Kept %d / %d records (%.1f%%)\n", len(kept), len(records), pct)
		fmt.Printf("✓ Subset saved to %s\n", out)

		printSubsetChecks(kept)
		return nil
	},
}

// printSubsetChecks reruns the two region tests over the subset so the
// language-controlled comparison is visible immediately. Degenerate subsets
// (one region filtered out entirely) warn instead of failing the command.
func printSubsetChecks(records []dataset.Record) {
	agg := aggregate.New(labels.DefaultRegionMap(), labels.DefaultIndustryMap(), logger)

	g := agg.Fold(records)
	intl := g.ByRegion[string(labels.RegionInternational)]
	china := g.ByRegion[string(labels.RegionChinese)]
	fmt.Println("\nEnglish-only region comparison:")
	fmt.Printf("  International: %.1f%% mention (%d/%d)\n", intl.Rate, intl.Mentioned, intl.Total)
	fmt.Printf("  Chinese: %.1f%% mention (%d/%d)\n", china.Rate, china.Mentioned, china.Total)

	chi, err := stattest.MentionChiSquare(intl.Mentioned, intl.Total, china.Mentioned, china.Total, cfg.SignificanceLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: subset chi-square skipped: %v\n", err)
	} else {
		fmt.Printf("  χ²(%d) = %.1f, p %s (φ=%.3f)\n", chi.DF, chi.Chi2, stattest.FormatP(chi.PValue), chi.Phi)
	}

	intlScores, chinaScores := agg.RegionScores(records)
	tt, err := stattest.TwoSampleTTest(chinaScores, intlScores, cfg.SignificanceLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: subset t-test skipped: %v\n", err)
	} else {
		fmt.Printf("  t(%d) = %.2f, p %s (d=%.2f)\n", tt.DF, tt.T, stattest.FormatP(tt.PValue), tt.CohensD)
	}
}

func init() {
	rootCmd.AddCommand(subsetCmd)
	subsetCmd.Flags().StringVarP(&subsetOutputPath, "output", "o", "", "path for the subset file (default english_subset.json)")
}
