// internal/cmd/illumina.go
package cmd

import (
	"github.com/spf13/cobra"

	"simreads/internal/app"
	"simreads/internal/config"
)

func illuminaCmd() *cobra.Command {
	d := config.DefaultIllumina()
	var extras []string
	cmd := &cobra.Command{
		Use:   "illumina <genome_table> <abund_table> <output_dir>",
		Short: "Simulate short reads with art_illumina",
		Long: `Simulate Illumina short reads for every (community, taxon) pair. The
per-pair fold coverage is derived from relative abundance, target depth,
read length, and genome size; merged reads land under
<output_dir>/illumina/<community>/.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var cfg config.Illumina
			if err := loadFamily(cmd, &cfg, extras, func(m map[string]string) {
				cfg.Params = config.MergeExtras(cfg.Params, m)
			}); err != nil {
				return err
			}
			configureLogging(cfg.Debug, cfg.Quiet)
			return app.Illumina(cmd.Context(), inputsFromArgs(args), cfg)
		},
	}

	fs := cmd.Flags()
	fs.Float64("seq-depth", d.SeqDepth, "reads (or read pairs) per community")
	fs.Bool("art-paired", d.Paired, "simulate paired-end reads")
	fs.Int("art-len", d.ReadLen, "read length")
	fs.Float64("art-mflen", d.MFLen, "mean fragment length; <= 0 turns fragment simulation off")
	fs.Float64("art-sdev", d.SDev, "fragment length standard deviation")
	fs.String("art-seqsys", d.SeqSys, "ART sequencing system profile")
	fs.Int64("seed", d.Seed, "random seed forwarded to art_illumina; negative leaves it unset")
	fs.StringArrayVar(&extras, "art-extra", nil, "extra art_illumina flag as name=value (repeatable)")
	return cmd
}
