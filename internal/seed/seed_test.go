package seed

import (
	"context"
	"testing"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

func plain(p string) (string, error) { return "hashed:" + p, nil }

func TestBootstrapCountsAndIdempotence(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	wrote, err := Bootstrap(ctx, store, plain)
	if err != nil || !wrote {
		t.Fatalf("first Bootstrap: wrote=%v err=%v", wrote, err)
	}

	var users []models.User
	var properties []models.Property
	var appointments []models.Appointment
	var reviews []models.Review
	var notifications []models.Notification
	counts := []struct {
		key  string
		dest interface{}
		n    func() int
		want int
	}{
		{storage.KeyUsers, &users, func() int { return len(users) }, 5},
		{storage.KeyProperties, &properties, func() int { return len(properties) }, 10},
		{storage.KeyAppointments, &appointments, func() int { return len(appointments) }, 5},
		{storage.KeyReviews, &reviews, func() int { return len(reviews) }, 3},
		{storage.KeyNotifications, &notifications, func() int { return len(notifications) }, 7},
	}
	for _, c := range counts {
		if _, err := store.Get(ctx, c.key, c.dest); err != nil {
			t.Fatalf("Get %s: %v", c.key, err)
		}
		if got := c.n(); got != c.want {
			t.Fatalf("%s: expected %d records, got %d", c.key, c.want, got)
		}
	}

	if users[0].Password != "hashed:Admin123!" {
		t.Fatalf("password not hashed: %q", users[0].Password)
	}
	if users[1].Agent == nil || users[1].Agent.Rating != 5 {
		t.Fatalf("agent rating should match published reviews, got %+v", users[1].Agent)
	}
	if users[3].Agent.Status != models.AgentPending {
		t.Fatalf("expected Maria Santos pending, got %s", users[3].Agent.Status)
	}

	if err := store.Set(ctx, storage.KeyUsers, users[:1]); err != nil {
		t.Fatalf("Set: %v", err)
	}
	wrote, err = Bootstrap(ctx, store, plain)
	if err != nil || wrote {
		t.Fatalf("second Bootstrap should be a no-op: wrote=%v err=%v", wrote, err)
	}
	if _, err := store.Get(ctx, storage.KeyUsers, &users); err != nil || len(users) != 1 {
		t.Fatalf("seed overwrote existing data: %d users", len(users))
	}
}
