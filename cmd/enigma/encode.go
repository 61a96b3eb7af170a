package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/enigma/internal/cli"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode or decode a message",
	Long: `Runs a message through the machine and prints the result.
The text is read from the argument, --file, or standard input, in that order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		positions, _ := cmd.Flags().GetString("positions")
		sessionID, _ := cmd.Flags().GetString("session")
		showWindow, _ := cmd.Flags().GetBool("window")

		res, err := cli.Encode(cmd.Context(), cli.EncodeOptions{
			Options:   globalOptions(cmd),
			Text:      text,
			Positions: positions,
			SessionID: sessionID,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		if showWindow {
			fmt.Fprintf(cmd.ErrOrStderr(), ">>> Window %s\n", res.Window())
		}
		return nil
	},
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("file", "f", "", "Read the message from a file")
	encodeCmd.Flags().StringP("positions", "p", "", "Start positions, rotor 0 first, as numbers or letters (e.g. 24,3,21 or Y,D,V)")
	encodeCmd.Flags().StringP("session", "s", "", "Continue from, and save to, a named session")
	encodeCmd.Flags().Bool("window", false, "Print the rotor window to stderr after encoding")
}
