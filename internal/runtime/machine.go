package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/enigma/pkg/domain"
)

// Machine is the core rotor stepping and encoding state machine.
// It is not safe for concurrent use; callers sharing one Machine must serialize access.
type Machine struct {
	rotors    []*domain.Rotor
	reflector *domain.Reflector
	plugboard *domain.Plugboard
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMachine assembles a machine. Rotor index 0 is the rightmost, fastest rotor.
func NewMachine(rotors []*domain.Rotor, reflector *domain.Reflector, plugboard *domain.Plugboard, opts ...MachineOption) (*Machine, error) {
	if len(rotors) == 0 {
		return nil, domain.ErrNoRotors
	}
	if reflector == nil {
		return nil, fmt.Errorf("machine requires a reflector")
	}
	if plugboard == nil {
		var err error
		if plugboard, err = domain.NewPlugboard(); err != nil {
			return nil, err
		}
	}

	m := &Machine{
		rotors:    append([]*domain.Rotor(nil), rotors...),
		reflector: reflector,
		plugboard: plugboard,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// EncodeLetter encodes a single character. Characters outside A-Z are returned
// unchanged and leave the rotors where they are.
func (m *Machine) EncodeLetter(c rune) rune {
	return m.encodeLetter(context.Background(), c)
}

// EncodeMessage uppercases message and encodes it character by character.
// Rotor positions carry over between calls, so encoding is not idempotent.
func (m *Machine) EncodeMessage(message string) string {
	return m.EncodeMessageContext(context.Background(), message)
}

// EncodeMessageContext is EncodeMessage with a context passed to lifecycle hooks.
// Uppercasing is the simple per-rune mapping of strings.ToUpper, so 'ß' stays a
// single non-letter rune rather than becoming "SS". Invalid UTF-8 bytes come out as U+FFFD.
func (m *Machine) EncodeMessageContext(ctx context.Context, message string) string {
	var sb strings.Builder
	sb.Grow(len(message))
	for _, c := range strings.ToUpper(message) {
		sb.WriteRune(m.encodeLetter(ctx, c))
	}
	return sb.String()
}

func (m *Machine) encodeLetter(ctx context.Context, c rune) rune {
	if !domain.IsLetter(c) {
		return c
	}
	m.step(ctx)
	out := m.transform(c, nil)
	m.emitLetter(ctx, c, out)
	return out
}

// step advances rotor 0 and carries into the next rotor for as long as the
// rotor that just moved lands on its notch.
func (m *Machine) step(ctx context.Context) {
	for i, r := range m.rotors {
		notched := r.Rotate()
		m.emitStep(ctx, i, r.Position(), notched)
		if !notched {
			return
		}
		if i+1 < len(m.rotors) {
			m.logger.Debug("rotor carry", "rotor", i, "next", i+1)
		}
	}
}

// transform runs the signal path for the current positions without stepping.
// When stages is non-nil every intermediate letter is appended to it.
func (m *Machine) transform(c rune, stages *[]Stage) rune {
	record := func(kind StageKind, index int, out rune) {
		if stages != nil {
			*stages = append(*stages, Stage{Kind: kind, Index: index, Letter: out})
		}
	}

	c = m.plugboard.Swap(c)
	record(StagePlugboardIn, -1, c)

	for i, r := range m.rotors {
		c = r.EncodeForward(c)
		record(StageForward, i, c)
	}

	c = m.reflector.Reflect(c)
	record(StageReflector, -1, c)

	for i := len(m.rotors) - 1; i >= 0; i-- {
		c = m.rotors[i].EncodeBackward(c)
		record(StageBackward, i, c)
	}

	c = m.plugboard.Swap(c)
	record(StagePlugboardOut, -1, c)
	return c
}

// Positions returns a copy of the current rotor positions in rotor index order.
func (m *Machine) Positions() []int {
	out := make([]int, len(m.rotors))
	for i, r := range m.rotors {
		out[i] = r.Position()
	}
	return out
}

// Rotors returns the number of rotors.
func (m *Machine) Rotors() int {
	return len(m.rotors)
}

func (m *Machine) emitStep(ctx context.Context, rotor, position int, notched bool) {
	if m.hooks.OnStep == nil {
		return
	}
	m.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRotorStep},
		Rotor:     rotor,
		Position:  position,
		Notched:   notched,
	})
}

func (m *Machine) emitLetter(ctx context.Context, in, out rune) {
	if m.hooks.OnLetter == nil {
		return
	}
	m.hooks.OnLetter(ctx, &domain.LetterEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLetterEncoded},
		Input:     in,
		Output:    out,
		Positions: m.Positions(),
	})
}
