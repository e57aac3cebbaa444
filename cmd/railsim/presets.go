package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/railsim/internal/config"
	"github.com/san-kum/railsim/internal/sweep"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSWEEP\tRANGE\tU0\tC\tLENGTH")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				p := cfg.Params

				sweepCol, rangeCol := "-", "-"
				if field, err := sweep.ParseField(cfg.Sweep.Field); err == nil {
					r := cfg.Sweep.Range
					sweepCol = field.Label()
					rangeCol = fmt.Sprintf("%.4g…%.4g step %.4g %s",
						r.Min*field.Scale(), r.Max*field.Scale(), r.Step*field.Scale(), field.Unit())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.3g kV\t%.4g μF\t%.3g m\n",
					name, sweepCol, rangeCol, p.Voltage*1e-3, p.Capacitance*1e6, p.BarrelLength)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "print a config file to start editing from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, config.DefaultConfig())
			if err != nil {
				return err
			}
			if outPath != "" {
				return config.Save(outPath, cfg)
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	addParamFlags(cmd.Flags())
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
