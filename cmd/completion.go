package cmd

import (

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for dashkit.

To load completions:

Bash:
  $ source <(dashkit completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dashkit completion bash > /etc/bash_completion.d/dashkit
  # macOS:
  $ dashkit completion bash > $(brew --prefix)/etc/bash_completion.d/dashkit

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dashkit completion zsh > "${fpath[1]}/_dashkit"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dashkit completion fish | source

  # To load completions for each session, execute once:
  $ dashkit completion fish > ~/.config/fish/completions/dashkit.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
