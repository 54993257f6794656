// internal/cmd/pacbio.go
package cmd

import (
	"github.com/spf13/cobra"

	"simreads/internal/app"
	"simreads/internal/config"
)

func pacbioCmd() *cobra.Command {
	d := config.DefaultPacBio()
	var extras []string
	cmd := &cobra.Command{
		Use:   "pacbio <genome_table> <abund_table> <output_dir>",
		Short: "Simulate PacBio-style long reads with simlord",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var cfg config.PacBio
			if err := loadFamily(cmd, &cfg, extras, func(m map[string]string) {
				cfg.Params = config.MergeExtras(cfg.Params, m)
			}); err != nil {
				return err
			}
			configureLogging(cfg.Debug, cfg.Quiet)
			return app.PacBio(cmd.Context(), inputsFromArgs(args), cfg)
		},
	}

	fs := cmd.Flags()
	fs.Float64("seq-depth", d.SeqDepth, "reads per community")
	fs.StringArrayVar(&extras, "sl-extra", nil, "extra simlord flag as name=value (repeatable)")
	return cmd
}
