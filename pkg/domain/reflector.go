package domain

import "fmt"

// Reflector is a fixed involutive substitution between the forward and backward passes.
type Reflector struct {
	wiring [AlphabetSize]int
}

// NewReflector builds a reflector from a 26-letter wiring.
// The wiring must pair every letter with a different letter.
func NewReflector(wiring string) (*Reflector, error) {
	w, err := parseWiring(wiring)
	if err != nil {
		return nil, err
	}
	for i, out := range w {
		if out == i {
			return nil, fmt.Errorf("%w: %c maps to itself", ErrInvalidReflector, LetterAt(i))
		}
		if w[out] != i {
			return nil, fmt.Errorf("%w: %c->%c but %c->%c", ErrInvalidReflector,
				LetterAt(i), LetterAt(out), LetterAt(out), LetterAt(w[out]))
		}
	}
	return &Reflector{wiring: w}, nil
}

// Reflect maps c to its paired letter.
func (r *Reflector) Reflect(c rune) rune {
	return LetterAt(r.wiring[IndexOf(c)])
}

// Wiring returns the wiring as a 26-letter string.
func (r *Reflector) Wiring() string {
	return wiringString(r.wiring)
}
