package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/srirammulukuntla11/vocalmaster/internal/analysis"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/services"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		seed   uint64
		format string
	)

	cmd := &cobra.Command{
		Use:   "analyze [recording]",
		Short: "Print a simulated vocal analysis",
		Long: `Print the report the backend would return for a recording.

The pitch trace is simulated; the recording, if given, is only read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			var upload domain.Upload
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				upload = domain.Upload{Filename: filepath.Base(args[0]), Data: data}
			}

			rng := newRand(cmd, seed)
			opts := services.Options{}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			studio := services.NewStudio(analysis.NewSimulator(rng), nil, opts)
			report, err := studio.Analyze(cmd.Context(), upload)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			if format == "yaml" {
				if out, err = yaml.JSONToYAML(out); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the simulation")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}
