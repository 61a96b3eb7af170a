package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/enigma/pkg/adapters/memory"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nil, memory.NewStore())
	ctx := context.Background()
	count := 2000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Create(ctx, sid)
		_ = mgr.Delete(ctx, sid)
	}

	lockCount := len(mgr.locks)
	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}

func TestCountLetters(t *testing.T) {
	if got := countLetters("Hello, World! 123"); got != 10 {
		t.Errorf("Expected 10 letters, got %d", got)
	}
}
