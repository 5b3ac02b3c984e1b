package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Overrides the root hook so a broken config never hides the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b := rootOpts.Build
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), b.Version)
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stagehook %s (commit %s, built %s)\n", b.Version, b.Commit, b.Date)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print the version number only")
	return cmd
}
