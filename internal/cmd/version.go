// internal/cmd/version.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"simreads/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simreads version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "simreads version %s\n", version.Version)
			return nil
		},
	}
}
