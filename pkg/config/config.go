package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/enigma/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = newValidator()

// RotorSpec describes one rotor. Name selects a preset from Rotors; explicit
// Wiring and Notch override it. Start is the start position as a letter and
// wins over Position when both are set.
type RotorSpec struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Wiring   string `json:"wiring,omitempty" yaml:"wiring,omitempty" mapstructure:"wiring" validate:"required_without=Name,omitempty,len=26,alpha"`
	Notch    string `json:"notch,omitempty" yaml:"notch,omitempty" mapstructure:"notch" validate:"required_without=Name,omitempty,len=1,alpha"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position" validate:"gte=0,lt=26"`
	Start    string `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start" validate:"omitempty,len=1,alpha"`
}

// ReflectorSpec describes the reflector by preset name or explicit wiring.
type ReflectorSpec struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Wiring string `json:"wiring,omitempty" yaml:"wiring,omitempty" mapstructure:"wiring" validate:"required_without=Name,omitempty,len=26,alpha"`
}

// Config is the machine configuration record. Rotor index 0 is the rightmost, fastest rotor.
type Config struct {
	Name      string        `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Rotors    []RotorSpec   `json:"rotors" yaml:"rotors" mapstructure:"rotors" validate:"required,min=1,dive"`
	Reflector ReflectorSpec `json:"reflector" yaml:"reflector" mapstructure:"reflector"`
	Plugboard []string      `json:"plugboard,omitempty" yaml:"plugboard,omitempty" mapstructure:"plugboard" validate:"omitempty,dive,len=2,alpha"`
}

// Validate checks struct constraints and then builds every component once,
// so that wiring, notch and plugboard errors surface before any encoding.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fromValidator(err)
	}
	_, _, _, err := c.Build()
	return err
}

// Positions returns the configured start positions in rotor index order.
func (c *Config) Positions() []int {
	out := make([]int, len(c.Rotors))
	for i, r := range c.Rotors {
		out[i] = r.startPosition()
	}
	return out
}

// Build constructs the machine components at the configured start positions.
func (c *Config) Build() ([]*domain.Rotor, *domain.Reflector, *domain.Plugboard, error) {
	return c.BuildAt(c.Positions())
}

// BuildAt constructs the machine components with rotors at the given positions,
// e.g. ones restored from a snapshot.
func (c *Config) BuildAt(positions []int) ([]*domain.Rotor, *domain.Reflector, *domain.Plugboard, error) {
	if len(c.Rotors) == 0 {
		return nil, nil, nil, domain.ErrNoRotors
	}
	if len(positions) != len(c.Rotors) {
		return nil, nil, nil, fmt.Errorf("%w: %d positions for %d rotors", domain.ErrPositionCount, len(positions), len(c.Rotors))
	}

	rotors := make([]*domain.Rotor, 0, len(c.Rotors))
	for i, spec := range c.Rotors {
		wiring, notch, err := spec.resolve()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("rotors[%d]: %w", i, err)
		}
		r, err := domain.NewRotor(wiring, notch, positions[i])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("rotors[%d]: %w", i, err)
		}
		rotors = append(rotors, r)
	}

	wiring, err := c.Reflector.resolve()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reflector: %w", err)
	}
	reflector, err := domain.NewReflector(wiring)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reflector: %w", err)
	}

	pairs := make([]domain.Pair, 0, len(c.Plugboard))
	for _, s := range c.Plugboard {
		p, err := domain.ParsePair(s)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("plugboard: %w", err)
		}
		pairs = append(pairs, p)
	}
	plugboard, err := domain.NewPlugboard(pairs...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("plugboard: %w", err)
	}

	return rotors, reflector, plugboard, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Rotors = append([]RotorSpec(nil), c.Rotors...)
	out.Plugboard = append([]string(nil), c.Plugboard...)
	return &out
}

func (r RotorSpec) resolve() (string, rune, error) {
	wiring, notch := r.Wiring, r.Notch
	if r.Name != "" {
		preset, ok := Rotors[strings.ToUpper(r.Name)]
		if !ok && (wiring == "" || notch == "") {
			return "", 0, fmt.Errorf("%w: rotor %q", ErrUnknownPreset, r.Name)
		}
		if wiring == "" {
			wiring = preset.Wiring
		}
		if notch == "" {
			notch = preset.Notch
		}
	}
	n := []rune(notch)
	if len(n) != 1 {
		return "", 0, fmt.Errorf("%w: %q", domain.ErrInvalidNotch, notch)
	}
	return wiring, n[0], nil
}

func (r RotorSpec) startPosition() int {
	if r.Start != "" {
		if idx := domain.IndexOf([]rune(strings.ToUpper(r.Start))[0]); idx >= 0 {
			return idx
		}
	}
	return r.Position
}

func (r ReflectorSpec) resolve() (string, error) {
	if r.Wiring != "" {
		return r.Wiring, nil
	}
	wiring, ok := Reflectors[strings.ToUpper(r.Name)]
	if !ok {
		return "", fmt.Errorf("%w: reflector %q", ErrUnknownPreset, r.Name)
	}
	return wiring, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// fieldPath turns a validator namespace like "Config.rotors[1].notch" into "rotors[1].notch".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
