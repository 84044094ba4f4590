package cli

import (
	"github.com/spf13/cobra"
)

// registerOutputFlags adds the standard output destination flags to a
// cobra command.
func registerOutputFlags(cmd *cobra.Command, opts *stripOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file path (default: stdout; .gz/.zst paths are compressed)")
}
