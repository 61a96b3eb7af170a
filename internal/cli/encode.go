package cli

import (
	"context"
	"errors"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/runner"
)

// EncodeOptions contains the configuration for the encode command.
type EncodeOptions struct {
	Options
	Text      string
	Positions string
	SessionID string
}

// EncodeResult is the output of one encode call.
type EncodeResult struct {
	Output    string
	Positions []int
}

// Window returns the rotor window after encoding.
func (r EncodeResult) Window() string {
	return domain.Window(r.Positions)
}

// Encode runs text through a machine built from the options. With a session
// the machine continues from the stored positions and the new ones are saved.
func Encode(ctx context.Context, opts EncodeOptions) (EncodeResult, error) {
	logger := CreateLogger(opts.Debug)

	clean, err := runner.SanitizeInput(opts.Text)
	if err != nil {
		return EncodeResult{}, err
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return EncodeResult{}, err
	}

	positions, err := config.ParsePositions(opts.Positions)
	if err != nil {
		return EncodeResult{}, err
	}

	if opts.SessionID != "" {
		if positions != nil {
			return EncodeResult{}, errors.New("--positions cannot be used with --session")
		}
		p, err := OpenPersistence(opts.Options, logger)
		if err != nil {
			return EncodeResult{}, err
		}
		defer p.Close()

		out, snap, err := NewManager(cfg, p, logger).Encode(ctx, opts.SessionID, clean)
		if err != nil {
			return EncodeResult{}, err
		}
		return EncodeResult{Output: out, Positions: snap.Positions}, nil
	}

	machineOpts := []enigma.Option{enigma.WithLogger(logger)}
	if positions != nil {
		machineOpts = append(machineOpts, enigma.WithPositions(positions))
	}
	if opts.Debug {
		machineOpts = append(machineOpts, enigma.WithLifecycleHooks(DebugHooks(logger)))
	}

	m, err := enigma.New(cfg, machineOpts...)
	if err != nil {
		return EncodeResult{}, err
	}
	out := m.EncodeMessageContext(ctx, clean)
	return EncodeResult{Output: out, Positions: m.Positions()}, nil
}
