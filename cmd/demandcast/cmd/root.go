package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries the configuration shared by every subcommand
type app struct {
	configPath string
	v          *viper.Viper
	cfg        *Config
}

func newRootCmd() (*cobra.Command, error) {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "demandcast",
		Short: "Monthly demand forecasting with Holt-Winters exponential smoothing",
		Long: `Downloads the monthly passenger dataset, selects the most accurate Holt-Winters
configuration on a trailing holdout year and forecasts the months ahead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default searches ./demandcast.yaml, ./configs, ~/.demandcast)")
	flags.String("data-dir", "", "Directory for the cached dataset and outputs")
	flags.String("dataset-url", "", "URL of the raw monthly csv")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	if err := bindFlags(a.v, flags, map[string]string{
		"data_dir":    "data-dir",
		"dataset_url": "dataset-url",
		"log_level":   "log-level",
	}); err != nil {
		return nil, err
	}

	runCmd, err := newRunCmd(a)
	if err != nil {
		return nil, err
	}
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newFetchCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	return rootCmd, nil
}

// bindFlags lets explicitly set flags override the config file and environment. keys maps
// config keys to flag names.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("unable to bind flag %q to %q, %w", name, key, err)
		}
	}
	return nil
}

// Execute runs the root command until completion or interrupt
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, err := newRootCmd()
	if err == nil {
		err = rootCmd.ExecuteContext(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
