package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stripimports/internal/version"
)

type versionOptions struct {
	json bool
}

func newVersionCommand() *cobra.Command {
	opts := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Long:  "Show the stripimports version together with the commit, build date, Go version, and platform it was built from.",
		Args:  cobra.NoArgs,
		// Override parent PersistentPreRunE — version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print version information as JSON")

	return cmd
}

func runVersion(cmd *cobra.Command, opts *versionOptions) error {
	info := version.GetInfo()

	out := info.String()

	if opts.json {
		encoded, err := info.JSON()
		if err != nil {
			return err
		}

		out = encoded
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)

	return err
}
