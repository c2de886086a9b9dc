package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/aggregate"
	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/figures"
	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/report"
)

var (
	figuresDir  string
	figuresData string
)

var figuresCmd = &cobra.Command{
	Use:   "figures <report.json>",
	Short: "Generate the paper's figures as PNG and PDF",
	Long: `Reads a saved analyze report and renders the figures. The sentiment
box plot needs the raw per-record scores; pass the dataset with --data to
include it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := report.LoadAnalysis(args[0])
		if err != nil {
			return err
		}
		regions := labels.DefaultRegionMap()

		var intl, china []float64
		if figuresData != "" {
			records, err := dataset.Load(figuresData)
			if err != nil {
				return err
			}
			agg := aggregate.New(regions, labels.DefaultIndustryMap(), logger)
			intl, china = agg.RegionScores(records)
		}

		dir := figuresDir
		if dir == "" {
			dir = cfg.FiguresDir
		}
		logger.Info("writing figures",
			zap.String("dir", dir),
			zap.String("run_id", a.Meta.RunID),
			zap.Bool("box_plot", len(intl) > 0 && len(china) > 0))
		if err := figures.NewRenderer(a, regions).WriteAll(dir, intl, china); err != nil {
			return err
		}
		fmt.Printf("✓ Figures written to %s/\n", dir)
		if figuresData == "" {
			fmt.Println("⚠ Sentiment box plot skipped; pass --data to include it.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(figuresCmd)
	figuresCmd.Flags().StringVarP(&figuresDir, "dir", "d", "", "output directory for figures (default from config)")
	figuresCmd.Flags().StringVar(&figuresData, "data", "", "dataset path for the sentiment box plot")
}
