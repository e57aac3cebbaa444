package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	integrator string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "railsim",
		Short:         "coaxial launcher shot simulator and parameter sweeps",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4, rk45)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newShotCmd(), newSweepCmd(), newCompareCmd(), newPresetsCmd(), newConfigCmd(),
		newRunCmd(), newMonteCarloCmd(), newOptimizeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
