package dsl

import (
	"fmt"

	"github.com/aretw0/enigma/pkg/config"
)

// Builder manages the machine configuration construction.
type Builder struct {
	name      string
	rotors    []*RotorBuilder
	reflector config.ReflectorSpec
	plugs     []string
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Rotor appends a rotor taken from the named preset.
// Rotors are added fastest first: the first call configures rotor index 0.
func (b *Builder) Rotor(name string) *RotorBuilder {
	rb := &RotorBuilder{
		spec:    config.RotorSpec{Name: name},
		builder: b,
	}
	b.rotors = append(b.rotors, rb)
	return rb
}

// CustomRotor appends a rotor with explicit wiring and notch.
func (b *Builder) CustomRotor(wiring string, notch rune) *RotorBuilder {
	rb := &RotorBuilder{
		spec:    config.RotorSpec{Wiring: wiring, Notch: string(notch)},
		builder: b,
	}
	b.rotors = append(b.rotors, rb)
	return rb
}

// Reflector selects a preset reflector.
func (b *Builder) Reflector(name string) *Builder {
	b.reflector = config.ReflectorSpec{Name: name}
	return b
}

// CustomReflector sets an explicit reflector wiring.
func (b *Builder) CustomReflector(wiring string) *Builder {
	b.reflector = config.ReflectorSpec{Wiring: wiring}
	return b
}

// Plug connects two letters on the plugboard.
func (b *Builder) Plug(a, c rune) *Builder {
	b.plugs = append(b.plugs, string([]rune{a, c}))
	return b
}

// Build compiles and validates the configuration.
func (b *Builder) Build() (*config.Config, error) {
	cfg := &config.Config{
		Name:      b.name,
		Reflector: b.reflector,
		Plugboard: append([]string(nil), b.plugs...),
	}
	for _, rb := range b.rotors {
		cfg.Rotors = append(cfg.Rotors, rb.spec)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build machine %q: %w", b.name, err)
	}
	return cfg, nil
}
