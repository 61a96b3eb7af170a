package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/enigma/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_JSON(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "classic.json"))
	require.NoError(t, err)

	require.Len(t, cfg.Rotors, 3)
	assert.Equal(t, "Z", cfg.Rotors[0].Notch)
	assert.Equal(t, "YRUHQSLDPXNGOKMIEBFZCWVJAT", cfg.Reflector.Wiring)
	assert.Equal(t, []string{"AB", "CD"}, cfg.Plugboard)
	assert.Equal(t, []int{0, 0, 0}, cfg.Positions())
}

func TestLoad_YAMLPresets(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "presets.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "field-key", cfg.Name)
	assert.Equal(t, "III", cfg.Rotors[2].Name)
	assert.Equal(t, "B", cfg.Reflector.Name)
	assert.Equal(t, []int{0, 2, 0}, cfg.Positions())

	rotors, reflector, plugboard, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, Rotors["I"].Wiring, rotors[0].Wiring())
	assert.Equal(t, 'Z', rotors[0].Notch(), "explicit notch overrides the preset")
	assert.Equal(t, 'E', rotors[1].Notch())
	assert.Equal(t, 2, rotors[1].Position())
	assert.Equal(t, Reflectors["B"], reflector.Wiring())
	assert.Equal(t, 'C', plugboard.Swap('D'))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"empty", ``, ErrEmptyConfig},
		{"duplicate plug", `{rotors: [I], reflector: B, plugboard: [AB, BC]}`, domain.ErrDuplicatePlugboardMapping},
		{"unknown rotor", `{rotors: [IX], reflector: B}`, ErrUnknownPreset},
		{"unknown reflector", `{rotors: [I], reflector: Z}`, ErrUnknownPreset},
		{"bad wiring", `{rotors: [{wiring: AAMFLGDQVZNTOWYHXUSPAIBRCJ, notch: Z}], reflector: B}`, domain.ErrInvalidWiring},
		{"non involutive reflector", `{rotors: [I], reflector: EKMFLGDQVZNTOWYHXUSPAIBRCJ}`, domain.ErrInvalidReflector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_StructValidation(t *testing.T) {
	doc := `
rotors:
  - wiring: EKMF
    notch: Z
  - name: II
    position: 30
reflector: B
plugboard: [ABC]
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 3)

	var keys []string
	for _, e := range errs {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		keys = append(keys, ve.Key)
	}
	assert.ElementsMatch(t, []string{"rotors[0].wiring", "rotors[1].position", "plugboard[0]"}, keys)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`{rotors: [I], reflector: B, rings: [1]}`))
	assert.Error(t, err)
}

func TestBuildAt(t *testing.T) {
	cfg := Default()

	rotors, _, _, err := cfg.BuildAt([]int{10, 5, 1})
	require.NoError(t, err)
	assert.Equal(t, 10, rotors[0].Position())
	assert.Equal(t, 1, rotors[2].Position())

	_, _, _, err = cfg.BuildAt([]int{1})
	assert.ErrorIs(t, err, domain.ErrPositionCount)

	_, _, _, err = (&Config{}).Build()
	assert.ErrorIs(t, err, domain.ErrNoRotors)
}

func TestDefault_Valid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestPresets_Valid(t *testing.T) {
	for name, p := range Rotors {
		_, err := domain.NewRotor(p.Wiring, []rune(p.Notch)[0], 0)
		assert.NoError(t, err, "rotor %s", name)
	}
	for name, w := range Reflectors {
		_, err := domain.NewReflector(w)
		assert.NoError(t, err, "reflector %s", name)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	data, err := cfg.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestClone(t *testing.T) {
	cfg := Default()
	c := cfg.Clone()
	c.Rotors[0].Position = 7
	c.Plugboard[0] = "XY"
	assert.Equal(t, 0, cfg.Rotors[0].Position)
	assert.Equal(t, "AB", cfg.Plugboard[0])
}
