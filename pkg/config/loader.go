package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrEmptyConfig is returned when a configuration document has no content.
var ErrEmptyConfig = errors.New("empty configuration")

// Load reads a configuration file. JSON and YAML are both accepted since
// every JSON document is also valid YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyConfig
	}

	cfg, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode maps a generic document onto Config without validating it.
// Shorthands are normalised on the way:
//   - a rotor given as a string is a preset name ("III")
//   - a reflector given as a string is a wiring when 26 letters long, else a preset name
//   - a plugboard pair may be "AB" or ["A", "B"]
func Decode(raw map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			rotorShorthandHook,
			reflectorShorthandHook,
			pairListHook,
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

var (
	rotorSpecType     = reflect.TypeOf(RotorSpec{})
	reflectorSpecType = reflect.TypeOf(ReflectorSpec{})
)

func rotorShorthandHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t != rotorSpecType || f.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"name": data}, nil
}

func reflectorShorthandHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t != reflectorSpecType || f.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	if len(s) == 26 {
		return map[string]any{"wiring": s}, nil
	}
	return map[string]any{"name": s}, nil
}

func pairListHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t.Kind() != reflect.String || f.Kind() != reflect.Slice {
		return data, nil
	}
	items, ok := data.([]any)
	if !ok {
		return data, nil
	}
	var sb strings.Builder
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("plugboard pair element must be a letter, got %T", item)
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
