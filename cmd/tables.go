package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geostat-labs/biascope/internal/labels"
	"github.com/geostat-labs/biascope/internal/report"
)

var tablesDir string

var tablesCmd = &cobra.Command{
	Use:   "tables <report.json>",
	Short: "Generate the paper's LaTeX tables with CSV twins",
	Long:  `Reads a saved analyze report and renders the five tables as LaTeX fragments, each with a CSV twin holding the same data.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := report.LoadAnalysis(args[0])
		if err != nil {
			return err
		}

		dir := tablesDir
		if dir == "" {
			dir = cfg.TablesDir
		}
		logger.Info("writing tables", zap.String("dir", dir), zap.String("run_id", a.Meta.RunID))
		if err := report.NewTableWriter(a, labels.DefaultRegionMap()).WriteAll(dir); err != nil {
			return err
		}
		fmt.Printf("✓ Tables written to %s/\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.Flags().StringVarP(&tablesDir, "dir", "d", "", "output directory for tables (default from config)")
}
