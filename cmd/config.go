package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/geostat-labs/biascope/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set biascope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		fmt.Printf("tables_dir: %s\n", cfg.TablesDir)
		fmt.Printf("figures_dir: %s\n", cfg.FiguresDir)
		fmt.Printf("sample_size: %d\n", cfg.SampleSize)
		fmt.Printf("random_seed: %d\n", cfg.RandomSeed)
		fmt.Printf("significance_level: %.3f\n", cfg.SignificanceLevel)
		fmt.Printf("cjk_ratio_threshold: %.2f\n", cfg.CJKRatioThreshold)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output_dir":
			cfg.OutputDir = val
		case "tables_dir":
			cfg.TablesDir = val
		case "figures_dir":
			cfg.FiguresDir = val
		case "sample_size":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_size: %v", val)
			}
			cfg.SampleSize = i
		case "random_seed":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid int for random_seed: %w", err)
			}
			cfg.RandomSeed = i
		case "significance_level":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 1 {
				return fmt.Errorf("invalid significance_level: %v (use a value in (0,1))", val)
			}
			cfg.SignificanceLevel = f
		case "cjk_ratio_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("invalid cjk_ratio_threshold: %v (use a value in [0,1])", val)
			}
			cfg.CJKRatioThreshold = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
