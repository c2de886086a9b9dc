package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	TablesDir  string `mapstructure:"tables_dir" yaml:"tables_dir"`
	FiguresDir string `mapstructure:"figures_dir" yaml:"figures_dir"`

	// Validation sampling
	SampleSize int   `mapstructure:"sample_size" yaml:"sample_size"`
	RandomSeed int64 `mapstructure:"random_seed" yaml:"random_seed"`

	// Statistics
	SignificanceLevel float64 `mapstructure:"significance_level" yaml:"significance_level"`

	// Language detection
	CJKRatioThreshold float64 `mapstructure:"cjk_ratio_threshold" yaml:"cjk_ratio_threshold"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.biascope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".biascope")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("BIASCOPE")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("output_dir", "output")
	v.SetDefault("tables_dir", "tables")
	v.SetDefault("figures_dir", "figures")
	v.SetDefault("sample_size", 100)
	v.SetDefault("random_seed", 42)
	v.SetDefault("significance_level", 0.05)
	v.SetDefault("cjk_ratio_threshold", 0.3)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".biascope")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
