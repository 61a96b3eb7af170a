package domain

import "errors"

// ErrInvalidWiring is returned when a wiring string is not a permutation of the alphabet.
var ErrInvalidWiring = errors.New("invalid wiring")

// ErrInvalidNotch is returned when a rotor notch is not a single letter.
var ErrInvalidNotch = errors.New("invalid notch")

// ErrInvalidPosition is returned when a rotor position is outside [0,26).
var ErrInvalidPosition = errors.New("invalid rotor position")

// ErrInvalidReflector is returned when a reflector wiring is not an involution without fixed points.
var ErrInvalidReflector = errors.New("invalid reflector")

// ErrInvalidPlugboardPair is returned when a plugboard pair is not two distinct letters.
var ErrInvalidPlugboardPair = errors.New("invalid plugboard pair")

// ErrDuplicatePlugboardMapping is returned when a letter appears in more than one plugboard pair.
var ErrDuplicatePlugboardMapping = errors.New("duplicate plugboard mapping")

// ErrNoRotors is returned when a machine is assembled without rotors.
var ErrNoRotors = errors.New("machine requires at least one rotor")

// ErrPositionCount is returned when a position set does not match the rotor count.
var ErrPositionCount = errors.New("position count does not match rotor count")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
