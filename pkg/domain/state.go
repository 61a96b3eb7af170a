package domain

import "time"

// Snapshot captures the resumable part of a machine: its rotor positions.
// Wiring, notches, reflector and plugboard come from configuration and are never persisted.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Positions []int     `json:"positions"`
	Encoded   int       `json:"encoded"` // Letters encoded in this session so far.
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed holds the encrypted positions when the store seals snapshots at rest.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSnapshot creates a snapshot for a session starting at the given positions.
func NewSnapshot(sessionID string, positions []int) *Snapshot {
	p := make([]int, len(positions))
	copy(p, positions)
	return &Snapshot{
		SessionID: sessionID,
		Positions: p,
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Positions = make([]int, len(s.Positions))
	copy(c.Positions, s.Positions)
	if s.Sealed != nil {
		c.Sealed = append([]byte(nil), s.Sealed...)
	}
	return &c
}

// Window renders the positions as the letters visible in the machine window,
// leftmost rotor first (the reverse of rotor index order).
func Window(positions []int) string {
	out := make([]rune, len(positions))
	for i, p := range positions {
		out[len(positions)-1-i] = LetterAt(p)
	}
	return string(out)
}
