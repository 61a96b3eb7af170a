package enigma_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_EncodeMessage(t *testing.T) {
	m, err := enigma.New(config.Default())
	require.NoError(t, err)

	assert.Equal(t, "MFNDZ AAFZV", m.EncodeMessage("HELLO WORLD"))
	assert.Equal(t, []int{10, 0, 0}, m.Positions())
	assert.Equal(t, "AAK", m.Window())
}

func TestMachine_NilConfigUsesDefault(t *testing.T) {
	m, err := enigma.New(nil)
	require.NoError(t, err)
	assert.Equal(t, "MFNDZ, AAFZV! 123", m.EncodeMessage("Hello, World! 123"))
}

func TestMachine_Reset(t *testing.T) {
	m, err := enigma.New(config.Default())
	require.NoError(t, err)

	first := m.EncodeMessage("AAAAA")
	require.Equal(t, "WUPGN", first)

	require.NoError(t, m.Reset())
	assert.Equal(t, []int{0, 0, 0}, m.Positions())
	assert.Equal(t, first, m.EncodeMessage("AAAAA"))
}

func TestMachine_Reciprocity(t *testing.T) {
	enc, err := enigma.New(config.Default())
	require.NoError(t, err)
	dec, err := enigma.New(config.Default())
	require.NoError(t, err)

	plain := "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG"
	assert.Equal(t, plain, dec.EncodeMessage(enc.EncodeMessage(plain)))
}

func TestMachine_WithPositions(t *testing.T) {
	m, err := enigma.New(config.Default(), enigma.WithPositions([]int{24, 3, 21}))
	require.NoError(t, err)
	assert.Equal(t, "KZI DLQHR JLERD XUO", m.EncodeMessage("THE QUICK BROWN FOX"))
	assert.Equal(t, []int{14, 4, 22}, m.Positions())

	// Reset goes back to the configured positions, not the resumed ones.
	require.NoError(t, m.Reset())
	assert.Equal(t, []int{0, 0, 0}, m.Positions())

	_, err = enigma.New(config.Default(), enigma.WithPositions([]int{1, 2}))
	assert.True(t, errors.Is(err, domain.ErrPositionCount))
}

func TestMachine_LifecycleHooks(t *testing.T) {
	var steps, letters int
	hooks := domain.LifecycleHooks{
		OnStep:   func(context.Context, *domain.StepEvent) { steps++ },
		OnLetter: func(context.Context, *domain.LetterEvent) { letters++ },
	}

	m, err := enigma.New(config.Default(), enigma.WithLifecycleHooks(hooks))
	require.NoError(t, err)
	m.EncodeMessage("AB C!")

	assert.Equal(t, 3, letters)
	assert.Equal(t, 3, steps)
}

func TestMachine_Trace(t *testing.T) {
	m, err := enigma.New(config.Default())
	require.NoError(t, err)

	tr, ok := m.Trace('H')
	require.True(t, ok)
	assert.Equal(t, 'M', tr.Output)
	assert.Equal(t, []int{1, 0, 0}, tr.Positions)

	_, ok = m.Trace('1')
	assert.False(t, ok)
	assert.Equal(t, []int{1, 0, 0}, m.Positions())
}

func TestMachine_Describe(t *testing.T) {
	m, err := enigma.New(config.Default())
	require.NoError(t, err)

	md := m.Describe()
	assert.True(t, strings.HasPrefix(md, "# default"))
	assert.Contains(t, md, "EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	assert.Contains(t, md, "- AB")
	assert.Contains(t, md, "- CD")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.yaml")
	content := `
name: field-key
rotors:
  - name: I
    notch: Z
  - name: II
  - name: III
reflector: B
plugboard: [AB, CD]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := enigma.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "field-key", m.Name)
	assert.Equal(t, "MFNDZ AAFZV", m.EncodeMessage("HELLO WORLD"))

	_, err = enigma.Open(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
