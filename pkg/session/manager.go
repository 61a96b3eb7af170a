package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/logging"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed session lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes access to machines shared through a session ID.
// Each call rebuilds the machine from the configuration at the stored
// positions, encodes, and writes the new positions back.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	cfg   *config.Config
	store ports.SnapshotStore

	mu    sync.Mutex            // Global lock for the map and cfg
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the lease of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks forwards hooks to every machine the Manager builds.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new Session Manager for machines built from cfg.
// A nil cfg selects config.Default().
func NewManager(cfg *config.Config, store ports.SnapshotStore, opts ...Option) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Manager{
		cfg:     cfg.Clone(),
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Create starts a session at the configured positions, replacing any previous snapshot.
func (m *Manager) Create(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return m.Reset(ctx, sessionID)
}

// Encode runs text through the session's machine and persists the new rotor positions.
// Unknown sessions start at the configured positions.
func (m *Manager) Encode(ctx context.Context, sessionID, text string) (string, *domain.Snapshot, error) {
	var (
		out  string
		snap *domain.Snapshot
	)
	cfg := m.config()
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, sessionID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			current = domain.NewSnapshot(sessionID, cfg.Positions())
		} else if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		machine, err := enigma.New(cfg,
			enigma.WithPositions(current.Positions),
			enigma.WithLogger(m.logger),
			enigma.WithLifecycleHooks(m.hooks),
		)
		if err != nil {
			return fmt.Errorf("failed to restore machine: %w", err)
		}

		out = machine.EncodeMessageContext(ctx, text)

		snap = current.Clone()
		snap.Positions = machine.Positions()
		snap.Encoded += countLetters(text)
		snap.UpdatedAt = time.Now().UTC()

		if err := m.store.Save(ctx, sessionID, snap); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.logger.Debug("session encoded",
			"session_id", sessionID,
			"window", domain.Window(snap.Positions),
		)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return out, snap, nil
}

// Reset puts the session back at the configured positions.
func (m *Manager) Reset(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot(sessionID, m.config().Positions())
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, snap)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Save persists a snapshot taken outside the Manager, e.g. by the interactive shell.
func (m *Manager) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if rotors := len(m.config().Rotors); len(snapshot.Positions) != rotors {
		return fmt.Errorf("%w: got %d positions for %d rotors", domain.ErrPositionCount, len(snapshot.Positions), rotors)
	}
	return m.WithLock(ctx, snapshot.SessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, snapshot.SessionID, snapshot)
	})
}

// Load retrieves an existing session snapshot from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Config returns a copy of the configuration sessions are built from.
func (m *Manager) Config() *config.Config {
	return m.config().Clone()
}

// SetConfig replaces the configuration used by later calls, e.g. after a hot reload.
// Stored snapshots are left alone; callers reset the sessions they own.
func (m *Manager) SetConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	clone := cfg.Clone()

	m.mu.Lock()
	m.cfg = clone
	m.mu.Unlock()

	m.logger.Debug("session configuration replaced", "machine", clone.Name, "rotors", len(clone.Rotors))
	return nil
}

func (m *Manager) config() *config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func countLetters(s string) int {
	n := 0
	for _, c := range strings.ToUpper(s) {
		if domain.IsLetter(c) {
			n++
		}
	}
	return n
}
