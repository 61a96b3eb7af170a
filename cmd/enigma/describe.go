package main

import (
	"fmt"
	"os"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/cli"
	"github.com/aretw0/enigma/internal/presentation/tui"
	"github.com/aretw0/enigma/pkg/runner"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the machine setup",
	Long:  `Prints the rotors, reflector and plugboard of the configured machine as Markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		cfg, err := cli.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		m, err := enigma.New(cfg)
		if err != nil {
			return err
		}

		out := m.Describe()
		if raw, _ := cmd.Flags().GetBool("raw"); !raw && runner.IsTerminal(os.Stdout) {
			if rendered, err := tui.NewRenderer()(out); err == nil {
				out = rendered
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print plain Markdown even on a terminal")
}
