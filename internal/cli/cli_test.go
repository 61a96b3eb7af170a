package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/enigma/internal/logging"
	"github.com/aretw0/enigma/pkg/adapters/file"
	"github.com/aretw0/enigma/pkg/adapters/redis"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noPlugboard = `name: bare
rotors: [I, II, III]
reflector: B
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"AB", "CD"}, cfg.Plugboard)

	cfg, err = LoadConfig(writeConfig(t, noPlugboard))
	require.NoError(t, err)
	assert.Equal(t, "bare", cfg.Name)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenPersistence(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		p, err := OpenPersistence(Options{SessionDir: t.TempDir()}, logging.NewNop())
		require.NoError(t, err)
		defer p.Close()

		assert.IsType(t, &file.Store{}, p.Store)
		assert.Nil(t, p.Locker)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		p, err := OpenPersistence(Options{RedisURL: "redis://" + mr.Addr() + "/0"}, logging.NewNop())
		require.NoError(t, err)
		defer p.Close()

		assert.IsType(t, &redis.Store{}, p.Store)
		assert.NotNil(t, p.Locker)

		snap := domain.NewSnapshot("s1", []int{1, 2, 3})
		require.NoError(t, p.Store.Save(context.Background(), "s1", snap))
		assert.True(t, mr.Exists(redis.DefaultPrefix+"snap:s1"))
	})

	t.Run("Sealed", func(t *testing.T) {
		dir := t.TempDir()
		key := strings.Repeat("ab", 32)
		p, err := OpenPersistence(Options{SessionDir: dir, SealKey: key}, logging.NewNop())
		require.NoError(t, err)

		require.NoError(t, p.Store.Save(context.Background(), "s1", domain.NewSnapshot("s1", []int{24, 3, 21})))
		loaded, err := p.Store.Load(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, []int{24, 3, 21}, loaded.Positions)

		raw, err := file.NewStore(dir).Load(context.Background(), "s1")
		require.NoError(t, err)
		assert.Empty(t, raw.Positions)
		assert.NotEmpty(t, raw.Sealed)
	})

	t.Run("BadSealKey", func(t *testing.T) {
		_, err := OpenPersistence(Options{SessionDir: t.TempDir(), SealKey: "abcd"}, logging.NewNop())
		assert.Error(t, err)
		_, err = OpenPersistence(Options{SessionDir: t.TempDir(), SealKey: "zz"}, logging.NewNop())
		assert.Error(t, err)
	})

	t.Run("BadURL", func(t *testing.T) {
		_, err := OpenPersistence(Options{RedisURL: "http://nope"}, logging.NewNop())
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	ctx := context.Background()

	res, err := Encode(ctx, EncodeOptions{Text: "Hello World"})
	require.NoError(t, err)
	assert.Equal(t, "MFNDZ AAFZV", res.Output)
	assert.Equal(t, "AAK", res.Window())

	res, err = Encode(ctx, EncodeOptions{Text: "THE QUICK BROWN FOX", Positions: "24,3,21"})
	require.NoError(t, err)
	assert.Equal(t, "KZI DLQHR JLERD XUO", res.Output)
	assert.Equal(t, []int{14, 4, 22}, res.Positions)

	res, err = Encode(ctx, EncodeOptions{
		Options: Options{ConfigPath: writeConfig(t, noPlugboard)},
		Text:    "HELLOWORLD",
	})
	require.NoError(t, err)
	assert.Equal(t, "MFNCZBBFZM", res.Output)

	_, err = Encode(ctx, EncodeOptions{Text: "A", Positions: "1,2"})
	assert.ErrorIs(t, err, domain.ErrPositionCount)
}

func TestEncode_Session(t *testing.T) {
	ctx := context.Background()
	opts := Options{SessionDir: t.TempDir()}

	first, err := Encode(ctx, EncodeOptions{Options: opts, Text: "HELLO", SessionID: "pad"})
	require.NoError(t, err)
	assert.Equal(t, "MFNDZ", first.Output)

	second, err := Encode(ctx, EncodeOptions{Options: opts, Text: " WORLD", SessionID: "pad"})
	require.NoError(t, err)
	assert.Equal(t, " AAFZV", second.Output)
	assert.Equal(t, "AAK", second.Window())

	_, err = Encode(ctx, EncodeOptions{Options: opts, Text: "A", SessionID: "pad", Positions: "0,0,0"})
	assert.Error(t, err)
}

func TestRunShell_Headless(t *testing.T) {
	var out bytes.Buffer
	err := RunShell(context.Background(), ShellOptions{
		Headless: true,
		Input:    strings.NewReader("HELLO WORLD\n:pos\n"),
		Output:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "MFNDZ AAFZV\n>>> Window AAK, positions 10,0,0.\n", out.String())
}

func TestRunShell_SessionFresh(t *testing.T) {
	opts := ShellOptions{
		Options:   Options{SessionDir: t.TempDir()},
		SessionID: "desk",
		Headless:  true,
	}

	var out bytes.Buffer
	opts.Input, opts.Output = strings.NewReader("HELLO\n"), &out
	require.NoError(t, RunShell(context.Background(), opts))

	out.Reset()
	opts.Input = strings.NewReader("WORLD\n")
	require.NoError(t, RunShell(context.Background(), opts))
	assert.Contains(t, out.String(), "Resuming session 'desk' at AAF.")

	out.Reset()
	opts.Fresh = true
	opts.Input = strings.NewReader("HELLO\n")
	require.NoError(t, RunShell(context.Background(), opts))
	assert.Contains(t, out.String(), "Session 'desk' active.")
	assert.Contains(t, out.String(), "MFNDZ")
}

func TestRunShell_WatchRequiresConfig(t *testing.T) {
	err := RunShell(context.Background(), ShellOptions{Watch: true, Headless: true})
	assert.Error(t, err)
}

func TestRunShell_Watch(t *testing.T) {
	path := writeConfig(t, noPlugboard)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	err := RunShell(ctx, ShellOptions{
		Options:  Options{ConfigPath: path},
		Watch:    true,
		Headless: true,
		Input:    strings.NewReader("HELLOWORLD\n"),
		Output:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "MFNCZBBFZM\n", out.String())
}

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := DebugHooks(logging.NewWriter(&buf, logging.Level(true)))

	hooks.OnStep(context.Background(), &domain.StepEvent{Rotor: 0, Position: 25, Notched: true})
	hooks.OnLetter(context.Background(), &domain.LetterEvent{Input: 'A', Output: 'W', Positions: []int{1, 0, 0}})

	out := buf.String()
	assert.Contains(t, out, "Rotor Step (Carry)")
	assert.Contains(t, out, "out=W")
	assert.Contains(t, out, "window=AAB")
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, HandleExecutionError(context.Canceled))
	assert.NoError(t, HandleExecutionError(nil))
	assert.Error(t, HandleExecutionError(assert.AnError))
}
