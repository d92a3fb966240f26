package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/seed"
	"tesBack/internal/storage"
	"tesBack/internal/timeutil"
	"tesBack/utils"
)

// testNow is the morning before seeded appointment 1.
var testNow = time.Date(2025, 11, 16, 10, 0, 0, 0, timeutil.Location())

type recordingPusher struct {
	mu  sync.Mutex
	got []models.Notification
}

func (p *recordingPusher) Push(_ context.Context, n models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, n)
	return nil
}

type testEnv struct {
	ctx    context.Context
	store  storage.Store
	svc    *Services
	pushed *recordingPusher
}

// failingStore rejects writes to failKey while fail is set.
type failingStore struct {
	*storage.MemoryStore
	failKey string
	fail    bool
}

func (s *failingStore) Set(ctx context.Context, key string, value interface{}) error {
	if s.fail && key == s.failKey {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, storage.NewMemoryStore(), logger.Nop())
}

func newTestEnvWith(t *testing.T, store storage.Store, log logger.Logger) *testEnv {
	t.Helper()
	tokens, err := utils.NewManager("test-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	env := &testEnv{
		ctx:    context.Background(),
		store:  store,
		pushed: &recordingPusher{},
	}
	env.svc = New(Deps{
		Store:      env.store,
		Tokens:     tokens,
		Pusher:     env.pushed,
		BcryptCost: bcrypt.MinCost,
		Logger:     log,
		Metrics:    metrics.New("tes-test", nil),
		Now:        func() time.Time { return testNow },
	})
	if _, err := seed.Bootstrap(env.ctx, env.store, env.svc.Auth.HashPassword); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return env
}

func (e *testEnv) notificationsFor(t *testing.T, userID int) []models.Notification {
	t.Helper()
	ns, err := e.svc.Notifications.ForUser(e.ctx, userID)
	if err != nil {
		t.Fatalf("ForUser(%d): %v", userID, err)
	}
	return ns
}

func strPtr(s string) *string { return &s }
