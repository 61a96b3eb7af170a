package main

import (
	"fmt"

	"github.com/aretw0/enigma/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a machine configuration",
	Long:  `Loads a configuration file and reports every invalid rotor, reflector or plugboard entry.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no configuration given: pass a file or --config")
		}

		cfg, err := config.Load(path)
		if err != nil {
			out := cmd.ErrOrStderr()
			fmt.Fprintf(out, "Validation failed: %s\n", path)
			if errs := config.ValidationErrors(err); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
				return fmt.Errorf("%d problem(s) found", len(errs))
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Machine %q is valid: %d rotors. ✅\n", cfg.Name, len(cfg.Rotors))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
