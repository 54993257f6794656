// internal/cmd/root.go

// Package cmd builds the simreads command tree. Each simulator family is
// a subcommand sharing the run-wide persistent flags; configuration is
// resolved per invocation from flags and an optional YAML file.
package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"simreads/internal/config"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simreads",
		Short: "simreads builds synthetic metagenome samples by orchestrating external read simulators.",
		Long: `simreads joins a genome table with per-community relative abundances,
derives a simulation effort for every (community, taxon) pair, runs an
external read simulator for each pair across a bounded worker pool, and
merges the results into per-community R1/R2 read files.`,
	}

	d := config.DefaultRun()
	pf := cmd.PersistentFlags()
	pf.String("config", "", "YAML config file; command-line flags win over file keys")
	pf.IntP("threads", "n", d.Threads, "number of parallel simulator invocations")
	pf.String("tmp-dir", d.TempDir, "scratch directory root")
	pf.Bool("gzip", d.Gzip, "gzip the merged read files")
	pf.Bool("debug", d.Debug, "sequential execution with command lines echoed")
	pf.Bool("quiet", d.Quiet, "log warnings and errors only")
	pf.Bool("keep-temp", d.KeepTemp, "keep the scratch tree after a successful run")
	pf.Bool("strict-taxa", d.StrictTaxa, "fail when the genome and abundance tables disagree on taxa")
	pf.Duration("timeout", d.Timeout, "per-invocation time limit; 0 disables")

	cmd.AddCommand(
		illuminaCmd(),
		pacbioCmd(),
		nanoporeCmd(),
		versionCmd(),
	)
	return cmd
}

// Execute runs the command tree and maps the outcome to an exit code:
// 0 on success, 130 when interrupted, 1 otherwise.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := RootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}
	return 0
}

// loadFamily resolves one family configuration: defaults from flag
// definitions, then the optional config file, then explicit flags.
// Passthrough extras arrive separately because their case must survive.
func loadFamily(cmd *cobra.Command, dst interface{}, extras []string, setParams func(map[string]string)) error {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := config.Load(file, cmd.Flags(), dst); err != nil {
		return err
	}
	cli, err := config.ParseExtras(extras)
	if err != nil {
		return err
	}
	if len(cli) > 0 {
		setParams(cli)
	}
	return nil
}

func inputsFromArgs(args []string) config.Inputs {
	return config.Inputs{
		GenomeTable:    args[0],
		AbundanceTable: args[1],
		OutputDir:      args[2],
	}
}
