package main

import (
	"os"

	"github.com/aretw0/enigma/internal/cli"
	"github.com/aretw0/enigma/pkg/runner"
	"github.com/spf13/cobra"
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Type messages into a live machine",
	Long: `Starts an interactive shell. Every line is encoded with the rotors continuing
from the previous line. Lines starting with ':' are commands; type :help for a list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		watch, _ := cmd.Flags().GetBool("watch")
		fresh, _ := cmd.Flags().GetBool("fresh")
		headless, _ := cmd.Flags().GetBool("headless")
		if !cmd.Flags().Changed("headless") && !runner.IsTerminal(os.Stdin) {
			headless = true
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunShell(ctx, cli.ShellOptions{
			Options:   globalOptions(cmd),
			SessionID: sessionID,
			Watch:     watch,
			Fresh:     fresh,
			Headless:  headless,
			Input:     cmd.InOrStdin(),
			Output:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().StringP("session", "s", "", "Persist rotor positions under this session ID")
	shellCmd.Flags().BoolP("watch", "w", false, "Reload the machine when the --config file changes")
	shellCmd.Flags().Bool("fresh", false, "Start the session over at the configured positions")
	shellCmd.Flags().Bool("headless", false, "No banner or prompt (default when stdin is not a terminal)")
}
