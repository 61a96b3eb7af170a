package domain

import (
	"fmt"
	"strings"
)

// Rotor is a stateful substitution unit.
// Its position is owned by the rotor and only ever changes through Rotate.
type Rotor struct {
	wiring   [AlphabetSize]int
	inverse  [AlphabetSize]int
	notch    int
	position int
}

// NewRotor builds a rotor from a 26-letter permutation, a notch letter and a start position.
func NewRotor(wiring string, notch rune, position int) (*Rotor, error) {
	fwd, err := parseWiring(wiring)
	if err != nil {
		return nil, err
	}

	n := IndexOf(toUpper(notch))
	if n < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotch, notch)
	}

	if position < 0 || position >= AlphabetSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}

	r := &Rotor{
		wiring:   fwd,
		notch:    n,
		position: position,
	}
	for i, out := range fwd {
		r.inverse[out] = i
	}
	return r, nil
}

// EncodeForward maps c through the rotor on the way in (towards the reflector).
func (r *Rotor) EncodeForward(c rune) rune {
	idx := mod(IndexOf(c) + r.position)
	return LetterAt(r.wiring[idx] - r.position)
}

// EncodeBackward maps c through the rotor on the way out.
// For an unchanged position it is the exact inverse of EncodeForward.
func (r *Rotor) EncodeBackward(c rune) rune {
	idx := mod(IndexOf(c) + r.position)
	return LetterAt(r.inverse[idx] - r.position)
}

// Rotate advances the rotor by one position and reports whether it
// landed on its notch, i.e. whether the next rotor must step.
func (r *Rotor) Rotate() bool {
	r.position = mod(r.position + 1)
	return r.position == r.notch
}

// Position returns the current rotational offset.
func (r *Rotor) Position() int {
	return r.position
}

// Notch returns the notch letter.
func (r *Rotor) Notch() rune {
	return LetterAt(r.notch)
}

// Wiring returns the forward wiring as a 26-letter string.
func (r *Rotor) Wiring() string {
	return wiringString(r.wiring)
}

func (r *Rotor) String() string {
	return fmt.Sprintf("Rotor(%s notch=%c pos=%c)", r.Wiring(), r.Notch(), LetterAt(r.position))
}

// parseWiring validates that s is a permutation of Alphabet and returns it as indices.
func parseWiring(s string) ([AlphabetSize]int, error) {
	var out [AlphabetSize]int
	s = strings.ToUpper(s)
	if len(s) != AlphabetSize {
		return out, fmt.Errorf("%w: expected %d letters, got %d", ErrInvalidWiring, AlphabetSize, len(s))
	}

	var seen [AlphabetSize]bool
	for i, c := range s {
		idx := IndexOf(c)
		if idx < 0 {
			return out, fmt.Errorf("%w: %q is not a letter", ErrInvalidWiring, c)
		}
		if seen[idx] {
			return out, fmt.Errorf("%w: letter %c appears twice", ErrInvalidWiring, c)
		}
		seen[idx] = true
		out[i] = idx
	}
	return out, nil
}

func wiringString(w [AlphabetSize]int) string {
	var sb strings.Builder
	sb.Grow(AlphabetSize)
	for _, idx := range w {
		sb.WriteRune(LetterAt(idx))
	}
	return sb.String()
}

func toUpper(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
