package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/session"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		r.Input = in
		r.Output = out
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithRenderer configures the Markdown renderer used by :describe.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithHeadless disables the prompt, for piped input.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithSession persists rotor positions after every line under the given session ID.
func WithSession(mgr *session.Manager, id string) Option {
	return func(r *Runner) {
		r.Sessions = mgr
		r.SessionID = id
	}
}

// WithConfigUpdates rebuilds the machine whenever a new configuration arrives.
func WithConfigUpdates(updates <-chan config.Update) Option {
	return func(r *Runner) {
		r.Updates = updates
	}
}

// WithMachineOptions are applied when the machine is rebuilt after a configuration update.
func WithMachineOptions(opts ...enigma.Option) Option {
	return func(r *Runner) {
		r.machineOpts = append(r.machineOpts, opts...)
	}
}
