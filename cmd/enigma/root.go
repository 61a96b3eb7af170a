package main

import (
	"fmt"
	"os"

	"github.com/aretw0/enigma/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "Enigma is a rotor cipher machine",
	Long: `Enigma simulates a configurable rotor cipher machine: plugboard, stepping rotors and reflector.
The machine is reciprocal, so encoding the ciphertext from the same start positions gives back the plaintext.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Machine configuration file (YAML or JSON); the reference machine if empty")
	rootCmd.PersistentFlags().Bool("debug", false, "Log rotor steps and internals to stderr")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for session storage, e.g. redis://localhost:6379/0")
	rootCmd.PersistentFlags().String("sessions-dir", "", "Directory for file-based sessions (default .enigma/sessions)")
	rootCmd.PersistentFlags().String("seal-key", "", "Hex AES-256 key to encrypt stored rotor positions (or "+cli.EnvSealKey+")")
}

func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	redisURL, _ := cmd.Flags().GetString("redis")
	sessionDir, _ := cmd.Flags().GetString("sessions-dir")
	sealKey, _ := cmd.Flags().GetString("seal-key")
	return cli.Options{
		ConfigPath: configPath,
		Debug:      debug,
		RedisURL:   redisURL,
		SessionDir: sessionDir,
		SealKey:    sealKey,
	}
}
