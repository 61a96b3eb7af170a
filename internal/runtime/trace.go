package runtime

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aretw0/enigma/pkg/domain"
)

// StageKind names a hop on the signal path.
type StageKind string

const (
	StagePlugboardIn  StageKind = "plugboard_in"
	StageForward      StageKind = "forward"
	StageReflector    StageKind = "reflector"
	StageBackward     StageKind = "backward"
	StagePlugboardOut StageKind = "plugboard_out"
)

// Stage is the letter leaving one component. Index is the rotor index for
// rotor stages and -1 otherwise.
type Stage struct {
	Kind   StageKind `json:"kind"`
	Index  int       `json:"index"`
	Letter rune      `json:"letter"`
}

// Trace is the full signal path of one encoded letter.
type Trace struct {
	Input     rune    `json:"input"`
	Output    rune    `json:"output"`
	Positions []int   `json:"positions"` // After stepping, i.e. the positions used for the transform.
	Stages    []Stage `json:"stages"`
}

// Trace encodes c like EncodeLetter, stepping included, and records every stage.
// It reports false and leaves the machine untouched when c is not a letter.
func (m *Machine) Trace(c rune) (Trace, bool) {
	if !domain.IsLetter(c) {
		return Trace{}, false
	}
	ctx := context.Background()
	m.step(ctx)

	stages := make([]Stage, 0, 2*len(m.rotors)+3)
	out := m.transform(c, &stages)
	m.emitLetter(ctx, c, out)

	return Trace{
		Input:     c,
		Output:    out,
		Positions: m.Positions(),
		Stages:    stages,
	}, true
}

type stageJSON struct {
	Kind   StageKind `json:"kind"`
	Index  int       `json:"index"`
	Letter string    `json:"letter"`
}

// MarshalJSON writes the letter as a one-character string.
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(stageJSON{Kind: s.Kind, Index: s.Index, Letter: string(s.Letter)})
}

// MarshalJSON writes input and output as one-character strings.
func (t Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Input     string  `json:"input"`
		Output    string  `json:"output"`
		Positions []int   `json:"positions"`
		Stages    []Stage `json:"stages"`
	}{string(t.Input), string(t.Output), t.Positions, t.Stages})
}

// Path renders the letters of the trace in order, e.g. "H > U > P > ... > M".
func (t Trace) Path() string {
	letters := make([]string, 0, len(t.Stages)+1)
	letters = append(letters, string(t.Input))
	for _, s := range t.Stages {
		letters = append(letters, string(s.Letter))
	}
	return strings.Join(letters, " > ")
}
