package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/enigma/pkg/adapters/file"
	"github.com/aretw0/enigma/pkg/adapters/redis"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/persistence/middleware"
	"github.com/aretw0/enigma/pkg/ports"
	"github.com/aretw0/enigma/pkg/session"
	backend "github.com/redis/go-redis/v9"
)

// Options are the settings shared by every command.
type Options struct {
	ConfigPath string
	Debug      bool
	RedisURL   string
	SessionDir string
	SealKey    string // Hex-encoded AES-256 key; sessions are stored in clear when empty.
}

// EnvSealKey is read when no seal key is passed explicitly.
const EnvSealKey = "ENIGMA_SEAL_KEY"

// LoadConfig reads the machine configuration, or returns the default machine when no path is set.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Persistence bundles the snapshot store with its optional lock and cleanup.
type Persistence struct {
	Store  ports.SnapshotStore
	Locker ports.DistributedLocker
	closer io.Closer
}

// Close releases the backend connection, if any.
func (p *Persistence) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// OpenPersistence picks the Redis store when a URL is set and the file store otherwise.
// With a seal key, rotor positions are encrypted before they reach either backend.
func OpenPersistence(opts Options, logger *slog.Logger) (*Persistence, error) {
	p, err := openBackend(opts, logger)
	if err != nil {
		return nil, err
	}

	key := opts.SealKey
	if key == "" {
		key = os.Getenv(EnvSealKey)
	}
	if key == "" {
		return p, nil
	}

	raw, err := hex.DecodeString(key)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("invalid seal key: %w", err)
	}
	seal, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: raw})
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("invalid seal key: %w", err)
	}
	p.Store = middleware.Chain(p.Store, seal)
	logger.Debug("Sealing session snapshots")
	return p, nil
}

func openBackend(opts Options, logger *slog.Logger) (*Persistence, error) {
	if opts.RedisURL != "" {
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)
		store := redis.NewFromClient(client)
		logger.Debug("Using Redis store", "addr", redisOpts.Addr, "db", redisOpts.DB)
		return &Persistence{
			Store:  store,
			Locker: redis.NewLocker(client, store.Prefix()),
			closer: store,
		}, nil
	}

	dir := opts.SessionDir
	if dir == "" {
		dir = file.DefaultPath
	}
	logger.Debug("Using file store", "path", dir)
	return &Persistence{Store: file.NewStore(dir)}, nil
}

// NewManager wires configuration, persistence and debug hooks into a session manager.
func NewManager(cfg *config.Config, p *Persistence, logger *slog.Logger) *session.Manager {
	opts := []session.Option{session.WithLogger(logger)}
	if p.Locker != nil {
		opts = append(opts, session.WithLocker(p.Locker))
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, session.WithLifecycleHooks(DebugHooks(logger)))
	}
	return session.NewManager(cfg, p.Store, opts...)
}

func stdio(in io.Reader, out io.Writer) (io.Reader, io.Writer) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return in, out
}
