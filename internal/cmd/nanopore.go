// internal/cmd/nanopore.go
package cmd

import (
	"github.com/spf13/cobra"

	"simreads/internal/app"
	"simreads/internal/config"
)

func nanoporeCmd() *cobra.Command {
	d := config.DefaultNanopore()
	var extras []string
	cmd := &cobra.Command{
		Use:   "nanopore <genome_table> <abund_table> <output_dir>",
		Short: "Simulate Nanopore-style long reads with nanosim-h",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var cfg config.Nanopore
			if err := loadFamily(cmd, &cfg, extras, func(m map[string]string) {
				cfg.Params = config.MergeExtras(cfg.Params, m)
			}); err != nil {
				return err
			}
			configureLogging(cfg.Debug, cfg.Quiet)
			return app.Nanopore(cmd.Context(), inputsFromArgs(args), cfg)
		},
	}

	fs := cmd.Flags()
	fs.Float64("seq-depth", d.SeqDepth, "reads per community")
	fs.Bool("circular", d.Circular, "treat reference genomes as circular")
	fs.StringArrayVar(&extras, "ns-extra", nil, "extra nanosim-h flag as name=value (repeatable)")
	return cmd
}
