package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/geostat-labs/biascope/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	// Shared structured logger; a nop logger until loadConfig runs.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "biascope",
	Short: "biascope: cultural bias analysis of LLM brand mentions",
	Long: `biascope analyzes a dataset of LLM responses to brand queries and
quantifies cultural bias between international and Chinese models:
mention rates, sentiment, recommendation loyalty, hypothesis tests,
and publication-ready tables and figures.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.biascope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c

	logCfg := zap.NewProductionConfig()
	if debug {
		logCfg = zap.NewDevelopmentConfig()
	}
	logCfg.OutputPaths = []string{"stderr"}
	l, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to build logger: %v\n", err)
		return
	}
	logger = l
}
