package runtime_test

import (
	"testing"

	"github.com/aretw0/enigma/pkg/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMachineInvariants verifies reciprocity and passthrough for random settings and messages.
func TestMachineInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	position := gen.IntRange(0, domain.AlphabetSize-1)

	properties.Property("encoding with a fresh machine at the same start decodes", prop.ForAll(
		func(p0, p1, p2 int, message string) bool {
			start := [3]int{p0, p1, p2}
			cipher := newMachine(t, start, scenarioPairs).EncodeMessage(message)
			return newMachine(t, start, scenarioPairs).EncodeMessage(cipher) == toUpper(message)
		},
		position, position, position,
		gen.AlphaString(),
	))

	properties.Property("non-letters never step the rotors", prop.ForAll(
		func(p0, p1, p2 int, digits string) bool {
			m := newMachine(t, [3]int{p0, p1, p2}, nil)
			out := m.EncodeMessage(digits)
			pos := m.Positions()
			return out == digits && pos[0] == p0 && pos[1] == p1 && pos[2] == p2
		},
		position, position, position,
		gen.NumString(),
	))

	properties.TestingRun(t)
}

func toUpper(s string) string {
	out := []rune(s)
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
