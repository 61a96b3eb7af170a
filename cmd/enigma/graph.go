package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/cli"
	"github.com/aretw0/enigma/internal/presentation/graph"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the signal path of a letter",
	Long:  `Encodes one letter and outputs a Mermaid diagram (graph LR) of its path through plugboard, rotors and reflector.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		letter, _ := cmd.Flags().GetString("letter")
		c := []rune(strings.ToUpper(letter))
		if len(c) != 1 || !domain.IsLetter(c[0]) {
			return fmt.Errorf("--letter must be a single letter A-Z, got %q", letter)
		}

		opts := globalOptions(cmd)
		cfg, err := cli.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetString("positions")
		positions, err := config.ParsePositions(raw)
		if err != nil {
			return err
		}
		var machineOpts []enigma.Option
		if positions != nil {
			machineOpts = append(machineOpts, enigma.WithPositions(positions))
		}

		m, err := enigma.New(cfg, machineOpts...)
		if err != nil {
			return err
		}
		tr, _ := m.Trace(c[0])
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tr))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("letter", "l", "A", "Letter to trace")
	graphCmd.Flags().StringP("positions", "p", "", "Positions before stepping, rotor 0 first")
}
