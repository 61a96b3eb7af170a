package dsl

import "github.com/aretw0/enigma/pkg/config"

// RotorBuilder provides a fluent API for configuring a rotor.
type RotorBuilder struct {
	spec    config.RotorSpec
	builder *Builder
}

// At sets the start position as a window letter.
func (r *RotorBuilder) At(letter rune) *RotorBuilder {
	r.spec.Start = string(letter)
	return r
}

// Position sets the start position as an offset in [0,26).
func (r *RotorBuilder) Position(pos int) *RotorBuilder {
	r.spec.Position = pos
	r.spec.Start = ""
	return r
}

// Notch overrides the preset notch.
func (r *RotorBuilder) Notch(letter rune) *RotorBuilder {
	r.spec.Notch = string(letter)
	return r
}

// Rotor continues with the next rotor.
func (r *RotorBuilder) Rotor(name string) *RotorBuilder {
	return r.builder.Rotor(name)
}

// CustomRotor continues with the next, explicitly wired rotor.
func (r *RotorBuilder) CustomRotor(wiring string, notch rune) *RotorBuilder {
	return r.builder.CustomRotor(wiring, notch)
}

// Reflector returns to the machine builder and selects a preset reflector.
func (r *RotorBuilder) Reflector(name string) *Builder {
	return r.builder.Reflector(name)
}

// CustomReflector returns to the machine builder with an explicit reflector wiring.
func (r *RotorBuilder) CustomReflector(wiring string) *Builder {
	return r.builder.CustomReflector(wiring)
}
