package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

func intPtr(v int) *int { return &v }

func TestIDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository(storage.NewMemoryStore())

	var last models.Property
	for i := 0; i < 3; i++ {
		p, err := repo.CreateProperty(ctx, models.Property{Name: "house"})
		if err != nil {
			t.Fatalf("CreateProperty: %v", err)
		}
		last = p
	}
	if last.ID != 3 {
		t.Fatalf("expected id 3, got %d", last.ID)
	}
	if _, err := repo.DeleteProperty(ctx, 3, nil); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	p, err := repo.CreateProperty(ctx, models.Property{Name: "lot"})
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if p.ID != 4 {
		t.Fatalf("expected id 4 after delete, got %d", p.ID)
	}
}

func TestCounterFollowsSeededIDs(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Set(ctx, storage.KeyUsers, []models.User{{ID: 5, Email: "a@b.co"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	repo := NewUserRepository(store)

	u, err := repo.CreateUser(ctx, models.User{Email: "c@d.co"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 6 {
		t.Fatalf("expected id 6, got %d", u.ID)
	}
	if _, err := repo.CreateUser(ctx, models.User{Email: "C@D.co"}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected duplicate email validation error, got %v", err)
	}
}

func TestMutatorErrorAbortsSave(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(storage.NewMemoryStore())
	a, err := repo.CreateAppointment(ctx, models.Appointment{Status: models.AppointmentPending})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	_, err = repo.UpdateAppointment(ctx, a.ID, func(a *models.Appointment) error {
		a.Status = models.AppointmentCompleted
		return models.ErrNotAuthorized
	})
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	got, err := repo.GetAppointmentByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAppointmentByID: %v", err)
	}
	if got.Status != models.AppointmentPending {
		t.Fatalf("status changed despite error: %s", got.Status)
	}
	if _, err := repo.GetAppointmentByID(ctx, 99); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPropertyFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository(storage.NewMemoryStore())
	seed := []models.Property{
		{Name: "Modern Condo", Type: "condo", Price: 4500000, Location: "Makati City", Bedrooms: intPtr(2), Status: models.PropertyActive, AgentID: 2},
		{Name: "Family House", Type: "house", Price: 8500000, Location: "Quezon City", Bedrooms: intPtr(4), Status: models.PropertyActive, AgentID: 3},
		{Name: "Beach Lot", Type: "lot", Price: 2000000, Location: "Batangas", Status: models.PropertyPending, AgentID: 2},
	}
	for _, p := range seed {
		if _, err := repo.CreateProperty(ctx, p); err != nil {
			t.Fatalf("CreateProperty: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter models.PropertyFilter
		want   []int
	}{
		{"no filter", models.PropertyFilter{}, []int{1, 2, 3}},
		{"status all", models.PropertyFilter{Status: "all"}, []int{1, 2, 3}},
		{"active", models.PropertyFilter{Status: models.PropertyActive}, []int{1, 2}},
		{"type", models.PropertyFilter{Type: "lot"}, []int{3}},
		{"price range", models.PropertyFilter{MinPrice: 3000000, MaxPrice: 5000000}, []int{1}},
		{"location", models.PropertyFilter{Location: "city"}, []int{1, 2}},
		{"bedrooms", models.PropertyFilter{Bedrooms: 3}, []int{2}},
		{"search", models.PropertyFilter{Search: "BEACH"}, []int{3}},
		{"agent", models.PropertyFilter{AgentID: 2, Status: models.PropertyActive}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetProperties(ctx, tt.filter)
			if err != nil {
				t.Fatalf("GetProperties: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d properties, got %d", len(tt.want), len(got))
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Fatalf("position %d: expected id %d, got %d", i, tt.want[i], p.ID)
				}
			}
		})
	}
}

func TestAppointmentDayFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(storage.NewMemoryStore())
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for _, d := range []string{"2024-03-09", "2024-03-10", "2024-03-11"} {
		if _, err := repo.CreateAppointment(ctx, models.Appointment{Date: d, Status: models.AppointmentConfirmed, AgentID: 2}); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
	}

	tests := []struct {
		status string
		want   int
	}{
		{models.DayToday, 1},
		{models.DayUpcoming, 2},
		{models.DayPast, 1},
		{models.AppointmentConfirmed, 3},
		{models.AppointmentPending, 0},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := repo.GetAppointments(ctx, models.AppointmentFilter{Status: tt.status, AgentID: 2}, now)
			if err != nil {
				t.Fatalf("GetAppointments: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, len(got))
			}
		})
	}
}

func TestNotificationsMarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(storage.NewMemoryStore())
	created, err := repo.CreateNotifications(ctx,
		models.Notification{UserID: 2, Type: models.NotifyReminder},
		models.Notification{UserID: 2, Type: models.NotifyReminder},
		models.Notification{UserID: 3, Type: models.NotifyReminder},
	)
	if err != nil {
		t.Fatalf("CreateNotifications: %v", err)
	}
	if len(created) != 3 || created[2].ID != 3 {
		t.Fatalf("unexpected ids: %+v", created)
	}

	if _, err := repo.MarkRead(ctx, created[0].ID, 3); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	n, err := repo.MarkAllRead(ctx, 2)
	if err != nil || n != 2 {
		t.Fatalf("MarkAllRead: n=%d err=%v", n, err)
	}
	if n, _ := repo.MarkAllRead(ctx, 2); n != 0 {
		t.Fatalf("expected nothing left to mark, got %d", n)
	}
}

func TestFavoriteToggle(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepository(storage.NewMemoryStore())
	now := time.Now()

	on, err := repo.Toggle(ctx, 5, 1, now)
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	on, err = repo.Toggle(ctx, 5, 1, now)
	if err != nil || on {
		t.Fatalf("second toggle: on=%v err=%v", on, err)
	}
	favs, err := repo.GetByCustomer(ctx, 5)
	if err != nil || len(favs) != 0 {
		t.Fatalf("expected no favorites, got %v (err %v)", favs, err)
	}
}

func TestAverageAgentRating(t *testing.T) {
	reviews := []models.Review{
		{AgentID: 2, AgentRating: 5, Status: models.ReviewPublished},
		{AgentID: 2, AgentRating: 4, Status: models.ReviewPublished},
		{AgentID: 2, AgentRating: 4, Status: models.ReviewPublished},
		{AgentID: 2, AgentRating: 1, Status: models.ReviewPending},
		{AgentID: 3, AgentRating: 1, Status: models.ReviewPublished},
	}
	if got := AverageAgentRating(reviews, 2); got != 4.3 {
		t.Fatalf("expected 4.3, got %v", got)
	}
	if got := AverageAgentRating(reviews, 9); got != 0 {
		t.Fatalf("expected 0 without reviews, got %v", got)
	}
}

func TestSessionsArePerUser(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewSessionRepository(store)

	for _, s := range []models.Session{{ID: 1, Email: "admin@x.com"}, {ID: 3, Email: "hans@x.com"}} {
		if err := repo.Set(ctx, s); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if s, found, err := repo.Get(ctx, 3); err != nil || !found || s.Email != "hans@x.com" {
		t.Fatalf("Get(3): %+v %v %v", s, found, err)
	}
	if err := repo.Clear(ctx, 3); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found, _ := repo.Get(ctx, 3); found {
		t.Fatal("session 3 still present")
	}
	if s, found, _ := repo.Get(ctx, 1); !found || s.Email != "admin@x.com" {
		t.Fatalf("session 1 lost: %+v", s)
	}

	// A record under someone else's key is not theirs.
	if err := store.Set(ctx, storage.SessionKey(5), models.Session{ID: 1}); err != nil {
		t.Fatalf("store.Set: %v", err)
	}
	if _, found, _ := repo.Get(ctx, 5); found {
		t.Fatal("foreign session returned for user 5")
	}
}
