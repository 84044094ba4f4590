package cli

import (
	"github.com/spf13/cobra"
)

type completionOptions struct {
	noDescriptions bool
}

func newCompletionCommand() *cobra.Command {
	opts := &completionOptions{}

	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish, or powershell.

Load it into the current shell session directly:

  source <(stripimports completion bash)
  stripimports completion powershell | Out-String | Invoke-Expression

Or write it to the shell's completion directory so every new session
picks it up:

  stripimports completion bash > /etc/bash_completion.d/stripimports
  stripimports completion zsh > "${fpath[1]}/_stripimports"
  stripimports completion fish > ~/.config/fish/completions/stripimports.fish`,
		// Override parent PersistentPreRunE — completion needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noDescriptions, "no-descriptions", false, "generate completions without argument descriptions")

	return cmd
}

func runCompletion(cmd *cobra.Command, shell string, opts *completionOptions) error {
	root := cmd.Root()
	w := cmd.OutOrStdout()
	withDesc := !opts.noDescriptions

	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, withDesc)
	case "zsh":
		if !withDesc {
			return root.GenZshCompletionNoDesc(w)
		}

		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, withDesc)
	case "powershell":
		if !withDesc {
			return root.GenPowerShellCompletion(w)
		}

		return root.GenPowerShellCompletionWithDesc(w)
	}

	return nil
}
