package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	forecaster "github.com/aouyang1/go-holtwinters"
	"github.com/aouyang1/go-holtwinters/dataset"
	"github.com/aouyang1/go-holtwinters/selection"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "DEMANDCAST"

var (
	ErrInvalidHorizon       = errors.New("horizon must be at least 1")
	ErrInvalidHistoryMonths = errors.New("history_months must be at least 1")
	ErrInvalidHoldout       = errors.New("holdout must be at least 1")
	ErrInvalidLogLevel      = errors.New("unknown log level")
)

// Config is the resolved command line configuration
type Config struct {
	DataDir         string  `mapstructure:"data_dir"`
	DatasetURL      string  `mapstructure:"dataset_url"`
	HistoryMonths   int     `mapstructure:"history_months"`
	Horizon         int     `mapstructure:"horizon"`
	Holdout         int     `mapstructure:"holdout"`
	Parallelization int     `mapstructure:"parallelization"`
	Guardrail       float64 `mapstructure:"guardrail"`
	Unit            string  `mapstructure:"unit"`
	LogLevel        string  `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", dataset.DefaultDataDir)
	v.SetDefault("dataset_url", dataset.DefaultURL)
	v.SetDefault("history_months", dataset.DefaultHistoryMonths)
	v.SetDefault("horizon", forecaster.DefaultHorizon)
	v.SetDefault("holdout", selection.DefaultHoldout)
	v.SetDefault("parallelization", 1)
	v.SetDefault("guardrail", forecaster.DefaultGuardrail)
	v.SetDefault("unit", "passengers")
	v.SetDefault("log_level", "info")
}

// loadConfig reads demandcast.yaml from the working directory, ./configs or ~/.demandcast
// unless an explicit path is given. Environment variables prefixed with DEMANDCAST_ and bound
// flags override the file.
func loadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("demandcast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".demandcast"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config, %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config, %w", err)
	}
	return &cfg, nil
}

// Validate checks the ranges the forecaster and history builder need
func (c *Config) Validate() error {
	if c.Horizon < 1 {
		return fmt.Errorf("horizon of %d, %w", c.Horizon, ErrInvalidHorizon)
	}
	if c.HistoryMonths < 1 {
		return fmt.Errorf("history_months of %d, %w", c.HistoryMonths, ErrInvalidHistoryMonths)
	}
	if c.Holdout < 1 {
		return fmt.Errorf("holdout of %d, %w", c.Holdout, ErrInvalidHoldout)
	}
	if c.Guardrail < 0 || c.Guardrail >= 1 {
		return fmt.Errorf("guardrail of %v, %w", c.Guardrail, forecaster.ErrInvalidGuardrail)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("%q, %w", c.LogLevel, ErrInvalidLogLevel)
	}
	return level, nil
}

// ForecasterOptions maps the configuration onto the forecaster's options
func (c *Config) ForecasterOptions() *forecaster.Options {
	opt := forecaster.NewDefaultOptions()
	opt.Guardrail = c.Guardrail
	opt.SelectionOptions.Holdout = c.Holdout
	opt.SelectionOptions.Parallelization = c.Parallelization
	opt.SelectionOptions.OptimizerOptions.Parallelization = c.Parallelization
	return opt
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "View the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.v.AllSettings()
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k, settings[k]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	configCmd.AddCommand(viewCmd)
	return configCmd
}
