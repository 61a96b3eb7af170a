package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/enigma/internal/cli"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, reset and remove sessions stored in .enigma/sessions or Redis.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd, func(mgr *session.Manager) error {
			ids, err := mgr.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}
			fmt.Fprintln(out, "Sessions:")
			for _, id := range ids {
				fmt.Fprintln(out, "- "+id)
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Show the stored positions of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd, func(mgr *session.Manager) error {
			snap, err := mgr.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", args[0], err)
			}
			data, err := json.MarshalIndent(struct {
				*domain.Snapshot
				Window string `json:"window"`
			}{snap, domain.Window(snap.Positions)}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <session-id>",
	Short: "Put a session back at the configured positions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd, func(mgr *session.Manager) error {
			snap, err := mgr.Reset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session '%s' reset to %s\n", args[0], domain.Window(snap.Positions))
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd, func(mgr *session.Manager) error {
			failed := 0
			for _, id := range args {
				if err := mgr.Delete(cmd.Context(), id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
			}
			if failed > 0 {
				return fmt.Errorf("%d session(s) could not be removed", failed)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func withManager(cmd *cobra.Command, fn func(*session.Manager) error) error {
	opts := globalOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	cfg, err := cli.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	p, err := cli.OpenPersistence(opts, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	return fn(cli.NewManager(cfg, p, logger))
}
