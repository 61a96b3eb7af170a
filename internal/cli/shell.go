package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/presentation/tui"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/runner"
)

// ShellOptions contains the configuration for the shell command.
type ShellOptions struct {
	Options
	SessionID string
	Watch     bool
	Fresh     bool
	Headless  bool

	Input  io.Reader
	Output io.Writer
}

// RunShell starts the interactive shell and blocks until the user quits,
// input ends or ctx is cancelled.
func RunShell(ctx context.Context, opts ShellOptions) error {
	logger := CreateLogger(opts.Debug)
	in, out := stdio(opts.Input, opts.Output)

	if opts.Watch && opts.ConfigPath == "" {
		return errors.New("--watch requires --config")
	}

	var (
		cfg     *config.Config
		updates <-chan config.Update
		err     error
	)
	if opts.Watch {
		ch, err := config.Watch(ctx, opts.ConfigPath)
		if err != nil {
			return err
		}
		first, ok := <-ch
		if !ok {
			return ctx.Err()
		}
		if first.Err != nil {
			return fmt.Errorf("failed to load configuration: %w", first.Err)
		}
		cfg, updates = first.Config, ch
		logger.Info("Watching configuration", "path", opts.ConfigPath)
	} else if cfg, err = LoadConfig(opts.ConfigPath); err != nil {
		return err
	}

	var machineOpts []enigma.Option
	machineOpts = append(machineOpts, enigma.WithLogger(logger))
	if opts.Debug {
		machineOpts = append(machineOpts, enigma.WithLifecycleHooks(DebugHooks(logger)))
	}

	m, err := enigma.New(cfg, machineOpts...)
	if err != nil {
		return err
	}

	runnerOpts := []runner.Option{
		runner.WithIO(in, out),
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithMachineOptions(machineOpts...),
	}
	if updates != nil {
		runnerOpts = append(runnerOpts, runner.WithConfigUpdates(updates))
	}
	if !opts.Headless {
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewRenderer()))
	}

	if opts.SessionID != "" {
		p, err := OpenPersistence(opts.Options, logger)
		if err != nil {
			return err
		}
		defer p.Close()

		mgr := NewManager(cfg, p, logger)
		if opts.Fresh {
			if err := mgr.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		runnerOpts = append(runnerOpts, runner.WithSession(mgr, opts.SessionID))
	}

	if !opts.Headless {
		tui.PrintBanner(out)
		fmt.Fprintln(out, tui.Window(m.Window()))
		printSystemMessage(out, "%s ready. Type :help for commands.", cfg.Name)
	}

	r := runner.NewRunner(runnerOpts...)
	err = r.Run(ctx, m)
	logger.Debug("Shell finished", "window", r.Machine().Window(), "err", err)
	return HandleExecutionError(err)
}
