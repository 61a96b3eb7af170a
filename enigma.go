package enigma

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/enigma/internal/runtime"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
)

// Trace is the recorded signal path of a single letter.
type Trace = runtime.Trace

// Stage is one step of a Trace.
type Stage = runtime.Stage

// Machine is the high-level entry point for the library.
// It wraps the core runtime machine together with the configuration it was built from.
// Like the core, it is not safe for concurrent use.
type Machine struct {
	runtime   *runtime.Machine
	cfg       *config.Config
	positions []int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithPositions starts the machine at the given rotor positions instead of the
// configured ones. Used to resume from a snapshot.
func WithPositions(positions []int) Option {
	return func(m *Machine) {
		m.positions = append([]int(nil), positions...)
	}
}

// New builds a machine from a configuration.
// A nil configuration selects config.Default().
func New(cfg *config.Config, opts ...Option) (*Machine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Machine{cfg: cfg.Clone(), Name: cfg.Name}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}

	if m.positions != nil && len(m.positions) != len(m.cfg.Rotors) {
		return nil, fmt.Errorf("%w: got %d positions for %d rotors", domain.ErrPositionCount, len(m.positions), len(m.cfg.Rotors))
	}

	start := m.positions
	if start == nil {
		start = m.cfg.Positions()
	}
	if err := m.build(start); err != nil {
		return nil, err
	}
	return m, nil
}

// Open loads a configuration file and builds a machine from it.
func Open(path string, opts ...Option) (*Machine, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

func (m *Machine) build(positions []int) error {
	rotors, reflector, plugboard, err := m.cfg.BuildAt(positions)
	if err != nil {
		return err
	}
	rt, err := runtime.NewMachine(rotors, reflector, plugboard,
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithLogger(m.logger),
	)
	if err != nil {
		return err
	}
	m.runtime = rt
	return nil
}

// EncodeMessage uppercases the message and encodes it. Rotor state carries over between calls.
func (m *Machine) EncodeMessage(message string) string {
	return m.runtime.EncodeMessage(message)
}

// EncodeMessageContext is EncodeMessage with a context forwarded to lifecycle hooks.
func (m *Machine) EncodeMessageContext(ctx context.Context, message string) string {
	return m.runtime.EncodeMessageContext(ctx, message)
}

// EncodeLetter encodes one character. Non-letters pass through without stepping.
func (m *Machine) EncodeLetter(c rune) rune {
	return m.runtime.EncodeLetter(c)
}

// Trace encodes one letter and records its signal path.
// It reports false, without stepping, for characters outside A-Z.
func (m *Machine) Trace(c rune) (Trace, bool) {
	return m.runtime.Trace(c)
}

// Positions returns a copy of the current rotor positions, rotor 0 first.
func (m *Machine) Positions() []int {
	return m.runtime.Positions()
}

// Window returns the letters visible in the rotor window, leftmost rotor first.
func (m *Machine) Window() string {
	return domain.Window(m.runtime.Positions())
}

// Reset rebuilds the rotors at the configured initial positions.
func (m *Machine) Reset() error {
	m.logger.Debug("machine reset")
	return m.build(m.cfg.Positions())
}

// Config returns a copy of the configuration the machine was built from.
func (m *Machine) Config() *config.Config {
	return m.cfg.Clone()
}

// Describe renders the machine setup as Markdown.
func (m *Machine) Describe() string {
	var sb strings.Builder

	name := m.Name
	if name == "" {
		name = "Enigma"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "Window: `%s`\n\n", m.Window())

	sb.WriteString("## Rotors\n\n")
	sb.WriteString("| # | Name | Wiring | Notch | Start | Current |\n")
	sb.WriteString("|---|------|--------|-------|-------|---------|\n")
	rotors, reflector, plugboard, err := m.cfg.Build()
	if err != nil {
		fmt.Fprintf(&sb, "\ninvalid configuration: %v\n", err)
		return sb.String()
	}
	current := m.Positions()
	for i, r := range rotors {
		label := m.cfg.Rotors[i].Name
		if label == "" {
			label = "custom"
		}
		fmt.Fprintf(&sb, "| %d | %s | `%s` | %c | %c | %c |\n",
			i, label, r.Wiring(), r.Notch(), domain.LetterAt(r.Position()), domain.LetterAt(current[i]))
	}

	sb.WriteString("\n## Reflector\n\n")
	label := m.cfg.Reflector.Name
	if label == "" {
		label = "custom"
	}
	fmt.Fprintf(&sb, "- **%s**: `%s`\n", label, reflector.Wiring())

	sb.WriteString("\n## Plugboard\n\n")
	pairs := plugboard.Pairs()
	if len(pairs) == 0 {
		sb.WriteString("_No plugs connected._\n")
	}
	for _, p := range pairs {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	return sb.String()
}
