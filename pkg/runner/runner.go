package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/logging"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/session"
)

// Prompt is printed before every line read in interactive mode.
const Prompt = "> "

// ContentRenderer is a function that transforms Markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner is the interactive shell loop: every input line is encoded and
// printed, lines starting with ':' are commands.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Logger   *slog.Logger
	Renderer ContentRenderer
	Headless bool

	Sessions  *session.Manager
	SessionID string

	Updates <-chan config.Update

	machineOpts []enigma.Option
	machine     *enigma.Machine
	snapshot    *domain.Snapshot
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until EOF, :quit or ctx cancellation.
func (r *Runner) Run(ctx context.Context, m *enigma.Machine) error {
	r.machine = m
	if err := r.restoreSession(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.Input)
		scanner.Buffer(make([]byte, 0, 4096), MaxInputSize()+1)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		readErr <- err
	}()

	updates := r.Updates
	for {
		r.prompt()

		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)

		case upd, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			r.reload(ctx, upd)

		case line := <-lines:
			quit, err := r.handleLine(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// Machine returns the machine currently driven by the runner.
func (r *Runner) Machine() *enigma.Machine {
	return r.machine
}

func (r *Runner) prompt() {
	if !r.Headless {
		fmt.Fprint(r.Output, Prompt)
	}
}

func (r *Runner) handleLine(ctx context.Context, line string) (bool, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return false, nil
	}

	if strings.HasPrefix(strings.TrimSpace(line), ":") {
		return r.handleCommand(ctx, strings.Fields(strings.TrimSpace(line)))
	}

	clean, err := SanitizeInput(line)
	if err != nil {
		r.system("Input rejected: %v", err)
		return false, nil
	}

	out := r.machine.EncodeMessageContext(ctx, clean)
	fmt.Fprintln(r.Output, out)
	r.Logger.Debug("line encoded", "window", r.machine.Window(), "size", len(clean))

	return false, r.checkpoint(ctx, clean)
}

func (r *Runner) handleCommand(ctx context.Context, fields []string) (bool, error) {
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true, nil

	case ":reset":
		if err := r.machine.Reset(); err != nil {
			return false, err
		}
		r.system("Rotors reset to %s.", r.machine.Window())
		return false, r.checkpoint(ctx, "")

	case ":pos":
		r.system("Window %s, positions %s.", r.machine.Window(), config.FormatPositions(r.machine.Positions()))

	case ":trace":
		if len(fields) < 2 {
			r.system("Usage: :trace <letter>")
			return false, nil
		}
		c := []rune(strings.ToUpper(fields[1]))
		if len(c) != 1 || !domain.IsLetter(c[0]) {
			r.system("Not a letter: %q", fields[1])
			return false, nil
		}
		tr, _ := r.machine.Trace(c[0])
		fmt.Fprintln(r.Output, tr.Path())
		return false, r.checkpoint(ctx, string(c))

	case ":describe":
		r.render(r.machine.Describe())

	case ":help":
		r.render(helpText)

	default:
		r.system("Unknown command %s. Type :help for a list.", fields[0])
	}
	return false, nil
}

// restoreSession resumes the machine from the stored snapshot, creating one if needed.
func (r *Runner) restoreSession(ctx context.Context) error {
	if r.Sessions == nil || r.SessionID == "" {
		return nil
	}

	snap, err := r.Sessions.Load(ctx, r.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		r.snapshot = domain.NewSnapshot(r.SessionID, r.machine.Positions())
		r.system("Session '%s' active.", r.SessionID)
		return r.Sessions.Save(ctx, r.snapshot)
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	m, err := enigma.New(r.machine.Config(), append(r.machineOpts, enigma.WithPositions(snap.Positions))...)
	if err != nil {
		return fmt.Errorf("failed to resume session %q: %w", r.SessionID, err)
	}
	r.machine = m
	r.snapshot = snap
	r.system("Resuming session '%s' at %s.", r.SessionID, m.Window())
	return nil
}

// checkpoint stores the current positions when a session is active.
// A trace counts its letter as encoded; a reset (empty text) clears the counter.
func (r *Runner) checkpoint(ctx context.Context, text string) error {
	if r.snapshot == nil {
		return nil
	}

	snap := r.snapshot.Clone()
	snap.Positions = r.machine.Positions()
	if text == "" {
		snap.Encoded = 0
	}
	for _, c := range strings.ToUpper(text) {
		if domain.IsLetter(c) {
			snap.Encoded++
		}
	}
	snap.UpdatedAt = time.Now().UTC()

	if err := r.Sessions.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	r.snapshot = snap
	return nil
}

func (r *Runner) reload(ctx context.Context, upd config.Update) {
	if upd.Err != nil {
		r.system("Configuration error, keeping the current machine: %v", upd.Err)
		r.Logger.Warn("config reload failed", "err", upd.Err)
		return
	}

	m, err := enigma.New(upd.Config, r.machineOpts...)
	if err != nil {
		r.system("Configuration error, keeping the current machine: %v", err)
		return
	}
	if r.Sessions != nil {
		// The session must validate positions against the new rotor count.
		if err := r.Sessions.SetConfig(upd.Config); err != nil {
			r.system("Configuration error, keeping the current machine: %v", err)
			return
		}
	}
	r.machine = m
	r.system("Configuration reloaded, rotors at %s.", m.Window())

	if err := r.checkpoint(ctx, ""); err != nil {
		r.Logger.Warn("session reset after reload failed", "err", err)
	}
}

func (r *Runner) render(markdown string) {
	out := markdown
	if r.Renderer != nil {
		if rendered, err := r.Renderer(markdown); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimRight(out, "\n"))
}

// system prints a standardized system message.
func (r *Runner) system(format string, args ...any) {
	fmt.Fprintf(r.Output, ">>> %s\n", fmt.Sprintf(format, args...))
}

const helpText = `## Commands

- Any other line is encoded and printed.
- ` + "`:pos`" + ` shows the rotor window and positions.
- ` + "`:trace X`" + ` encodes one letter and prints its signal path.
- ` + "`:reset`" + ` puts the rotors back at their start positions.
- ` + "`:describe`" + ` shows the machine setup.
- ` + "`:quit`" + ` leaves the shell.
`
