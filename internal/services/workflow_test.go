package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tesBack/internal/models"
	"tesBack/internal/storage"
	"tesBack/internal/timeutil"
)

var bookingIDPattern = regexp.MustCompile(`^TES-\d{4}-\d{2}-\d{3}$`)

func TestBookAppointmentEmitsTwoNotifications(t *testing.T) {
	env := newTestEnv(t)
	agentBefore := len(env.notificationsFor(t, 2))
	customerBefore := len(env.notificationsFor(t, 5))

	a, err := env.svc.Customer.BookAppointment(env.ctx, models.BookingRequest{
		CustomerID: 5, PropertyID: 9, Date: "2025-11-20", Time: "1:00 PM - 2:00 PM",
	})
	if err != nil {
		t.Fatalf("BookAppointment: %v", err)
	}
	if a.ID != 6 || a.AgentID != 2 || a.Status != models.AppointmentPending {
		t.Fatalf("unexpected appointment %+v", a)
	}
	if !bookingIDPattern.MatchString(a.BookingID) || a.BookingID[:11] != "TES-2025-11" {
		t.Fatalf("bad booking id %q", a.BookingID)
	}

	agentNs := env.notificationsFor(t, 2)
	customerNs := env.notificationsFor(t, 5)
	if len(agentNs) != agentBefore+1 || agentNs[0].Type != models.NotifyAppointmentRequest {
		t.Fatalf("agent notification missing: %+v", agentNs[0])
	}
	if len(customerNs) != customerBefore+1 || customerNs[0].Type != models.NotifyBookingConfirmed {
		t.Fatalf("customer notification missing: %+v", customerNs[0])
	}
	if len(env.pushed.got) != 2 {
		t.Fatalf("expected 2 pushes, got %d", len(env.pushed.got))
	}
}

func TestBookAppointmentRejects(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		req     models.BookingRequest
		wantErr error
	}{
		{"pending property", models.BookingRequest{CustomerID: 3, PropertyID: 3, Date: "2025-11-20", Time: "9:00 AM"}, ErrPropertyUnavailable},
		{"missing property", models.BookingRequest{CustomerID: 3, PropertyID: 99, Date: "2025-11-20", Time: "9:00 AM"}, models.ErrPropertyNotFound},
		{"agent is not a customer", models.BookingRequest{CustomerID: 2, PropertyID: 1, Date: "2025-11-20", Time: "9:00 AM"}, models.ErrCustomerNotFound},
		{"wrong agent", models.BookingRequest{CustomerID: 3, AgentID: 4, PropertyID: 1, Date: "2025-11-20", Time: "9:00 AM"}, ErrAgentMismatch},
		{"past date", models.BookingRequest{CustomerID: 3, PropertyID: 1, Date: "2025-11-15", Time: "9:00 AM"}, ErrPastDate},
		{"bad date", models.BookingRequest{CustomerID: 3, PropertyID: 1, Date: "20/11/2025", Time: "9:00 AM"}, ErrInvalidDate},
		{"no time", models.BookingRequest{CustomerID: 3, PropertyID: 1, Date: "2025-11-20"}, ErrTimeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.svc.Customer.BookAppointment(env.ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTerminalAppointmentsCannotChange(t *testing.T) {
	env := newTestEnv(t)

	// 3 is completed, 5 is cancelled.
	for _, id := range []int{3, 5} {
		customerID := 5
		if id == 5 {
			customerID = 3
		}
		if _, err := env.svc.Customer.CancelAppointment(env.ctx, id, customerID); !errors.Is(err, models.ErrInvalidState) {
			t.Fatalf("cancel %d: expected invalid state, got %v", id, err)
		}
		_, err := env.svc.Customer.RescheduleAppointment(env.ctx, id, customerID,
			models.RescheduleRequest{Date: "2025-11-25", Time: "9:00 AM"})
		if !errors.Is(err, models.ErrInvalidState) {
			t.Fatalf("reschedule %d: expected invalid state, got %v", id, err)
		}
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.Agent.ConfirmAppointment(env.ctx, 2, 4); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("non-owner confirm: expected unauthorized, got %v", err)
	}
	if _, err := env.svc.Agent.CompleteAppointment(env.ctx, 2, 2); !errors.Is(err, ErrCannotComplete) {
		t.Fatalf("complete pending: expected ErrCannotComplete, got %v", err)
	}
	a, err := env.svc.Agent.ConfirmAppointment(env.ctx, 2, 2)
	if err != nil || a.Status != models.AppointmentConfirmed {
		t.Fatalf("ConfirmAppointment: %+v %v", a, err)
	}

	a, err = env.svc.Customer.RescheduleAppointment(env.ctx, 2, 3, models.RescheduleRequest{Date: "2025-11-28", Time: "4:00 PM"})
	if err != nil {
		t.Fatalf("RescheduleAppointment: %v", err)
	}
	if a.Status != models.AppointmentPending || a.Date != "2025-11-28" {
		t.Fatalf("reschedule should reset to pending: %+v", a)
	}
	if _, err := env.svc.Customer.RescheduleAppointment(env.ctx, 2, 5, models.RescheduleRequest{Date: "2025-11-28", Time: "4:00 PM"}); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("foreign reschedule: expected unauthorized, got %v", err)
	}

	if _, err := env.svc.Agent.ConfirmAppointment(env.ctx, 2, 2); err != nil {
		t.Fatalf("confirm again: %v", err)
	}
	if a, err = env.svc.Agent.CompleteAppointment(env.ctx, 2, 2); err != nil || a.Status != models.AppointmentCompleted {
		t.Fatalf("CompleteAppointment: %+v %v", a, err)
	}
	if _, err := env.svc.Customer.CancelAppointment(env.ctx, 2, 3); !errors.Is(err, ErrCannotCancel) {
		t.Fatalf("cancel completed: expected ErrCannotCancel, got %v", err)
	}
}

func TestEditedPropertyReturnsToPending(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.svc.Agent.UpdateProperty(env.ctx, 1, 2, models.PropertyInput{Name: strPtr("Palm Residence Tower 2")})
	if err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if p.Status != models.PropertyPending {
		t.Fatalf("expected pending after edit, got %s", p.Status)
	}
	available, err := env.svc.Customer.AvailableProperties(env.ctx, models.PropertyFilter{})
	if err != nil {
		t.Fatalf("AvailableProperties: %v", err)
	}
	for _, ap := range available {
		if ap.ID == 1 {
			t.Fatal("edited property still visible to customers")
		}
	}
	if _, err := env.svc.Agent.UpdateProperty(env.ctx, 1, 4, models.PropertyInput{}); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("non-owner edit: expected unauthorized, got %v", err)
	}

	if p, err = env.svc.Admin.ApproveProperty(env.ctx, 1, 1); err != nil || p.Status != models.PropertyActive {
		t.Fatalf("ApproveProperty: %+v %v", p, err)
	}
	if _, err := env.svc.Admin.ApproveProperty(env.ctx, 1, 1); !errors.Is(err, ErrPropertyNotPending) {
		t.Fatalf("approve active: expected ErrPropertyNotPending, got %v", err)
	}
}

func TestAddPropertyRequiresApprovedAgent(t *testing.T) {
	env := newTestEnv(t)
	price := int64(1500000)
	in := models.PropertyInput{Name: strPtr("Tiny House"), Type: strPtr("House"), Location: strPtr("Tagaytay"), Price: &price}

	if _, err := env.svc.Agent.AddProperty(env.ctx, 4, in); !errors.Is(err, ErrAgentNotApproved) {
		t.Fatalf("pending agent: expected ErrAgentNotApproved, got %v", err)
	}
	if _, err := env.svc.Agent.AddProperty(env.ctx, 3, in); !errors.Is(err, models.ErrAgentNotFound) {
		t.Fatalf("customer: expected ErrAgentNotFound, got %v", err)
	}
	p, err := env.svc.Agent.AddProperty(env.ctx, 2, in)
	if err != nil {
		t.Fatalf("AddProperty: %v", err)
	}
	if p.ID != 11 || p.Status != models.PropertyPending {
		t.Fatalf("unexpected property %+v", p)
	}
	admin := env.notificationsFor(t, 1)
	if admin[0].Type != models.NotifyPropertyPending || admin[0].Metadata[models.MetaPropertyID] != 11 {
		t.Fatalf("admin not notified: %+v", admin[0])
	}

	zero := int64(0)
	if _, err := env.svc.Agent.AddProperty(env.ctx, 2, models.PropertyInput{Name: strPtr("Free"), Type: strPtr("Lot"), Location: strPtr("X"), Price: &zero}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestReviewPublishUpdatesAgentRating(t *testing.T) {
	env := newTestEnv(t)

	// Appointment 2 already has seeded review 3, so finish a fresh viewing.
	a, err := env.svc.Customer.BookAppointment(env.ctx, models.BookingRequest{CustomerID: 3, PropertyID: 7, Date: "2025-11-18", Time: "9:00 AM"})
	if err != nil {
		t.Fatalf("BookAppointment: %v", err)
	}
	if ok, _ := env.svc.Customer.CanReviewAppointment(env.ctx, a.ID, 3); ok {
		t.Fatal("pending appointment should not be reviewable")
	}
	if _, err := env.svc.Customer.SubmitReview(env.ctx, models.ReviewRequest{CustomerID: 3, AppointmentID: a.ID, Rating: 3, PropertyRating: 3, AgentRating: 2}); !errors.Is(err, ErrCannotReview) {
		t.Fatalf("expected ErrCannotReview, got %v", err)
	}
	if _, err := env.svc.Agent.ConfirmAppointment(env.ctx, a.ID, 2); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := env.svc.Agent.CompleteAppointment(env.ctx, a.ID, 2); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := env.svc.Customer.SubmitReview(env.ctx, models.ReviewRequest{CustomerID: 3, AppointmentID: a.ID, Rating: 6, PropertyRating: 3, AgentRating: 2}); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := env.svc.Customer.SubmitReview(env.ctx, models.ReviewRequest{CustomerID: 5, AppointmentID: a.ID, Rating: 3, PropertyRating: 3, AgentRating: 2}); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("foreign review: expected unauthorized, got %v", err)
	}
	r, err := env.svc.Customer.SubmitReview(env.ctx, models.ReviewRequest{CustomerID: 3, AppointmentID: a.ID, Rating: 3, PropertyRating: 3, AgentRating: 2, Comment: "ok"})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if r.AgentID != 2 || r.PropertyID != 7 || r.Status != models.ReviewPending {
		t.Fatalf("unexpected review %+v", r)
	}
	if _, err := env.svc.Customer.SubmitReview(env.ctx, models.ReviewRequest{CustomerID: 3, AppointmentID: a.ID, Rating: 3, PropertyRating: 3, AgentRating: 2}); !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("second review: expected ErrAlreadyReviewed, got %v", err)
	}

	rating, err := env.svc.Agent.Rating(env.ctx, 2)
	if err != nil || rating != 5 {
		t.Fatalf("pending review must not count: %v %v", rating, err)
	}
	if _, err := env.svc.Admin.ApproveReview(env.ctx, r.ID, 1); err != nil {
		t.Fatalf("ApproveReview: %v", err)
	}
	// Published agent ratings are 5, 5 and 2.
	agent, err := env.svc.Agent.UserRepo.GetUserByID(env.ctx, 2)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if agent.Agent.Rating != 4 {
		t.Fatalf("expected rating 4, got %v", agent.Agent.Rating)
	}

	if err := env.svc.Admin.DeleteReview(env.ctx, r.ID, 1); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	agent, _ = env.svc.Agent.UserRepo.GetUserByID(env.ctx, 2)
	if agent.Agent.Rating != 5 {
		t.Fatalf("rating not recomputed after delete: %v", agent.Agent.Rating)
	}
}

func TestAgentApproval(t *testing.T) {
	env := newTestEnv(t)

	pending, err := env.svc.Admin.PendingAgents(env.ctx)
	if err != nil || len(pending) != 1 || pending[0].ID != 4 {
		t.Fatalf("PendingAgents: %+v %v", pending, err)
	}
	if _, err := env.svc.Admin.ApproveAgent(env.ctx, 3, 1); !errors.Is(err, models.ErrAgentNotFound) {
		t.Fatalf("approve customer: expected ErrAgentNotFound, got %v", err)
	}
	if _, err := env.svc.Admin.ApproveAgent(env.ctx, 4, 1); err != nil {
		t.Fatalf("ApproveAgent: %v", err)
	}
	if _, err := env.svc.Admin.RejectAgent(env.ctx, 4, 1); !errors.Is(err, ErrAgentNotPending) {
		t.Fatalf("reject approved: expected ErrAgentNotPending, got %v", err)
	}
	if _, err := env.svc.Auth.Login(env.ctx, models.SignInRequest{Email: "maria@tesrealestate.com", Password: "Agent123!", Role: models.RoleAgent}); err != nil {
		t.Fatalf("approved agent login: %v", err)
	}
	ns := env.notificationsFor(t, 4)
	if len(ns) != 1 || ns[0].Type != models.NotifyAgentApproved {
		t.Fatalf("agent not notified: %+v", ns)
	}
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)

	if err := env.svc.Admin.DeleteUser(env.ctx, 1, 1); !errors.Is(err, models.ErrCannotDeleteAdmin) {
		t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
	}
	if err := env.svc.Admin.DeleteUser(env.ctx, 5, 1); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := env.svc.Admin.DeleteUser(env.ctx, 5, 1); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	// Appointments keep pointing at the removed customer.
	d, err := env.svc.Customer.AppointmentDetails(env.ctx, 3)
	if err != nil {
		t.Fatalf("AppointmentDetails: %v", err)
	}
	if d.Customer != nil || d.Agent == nil || d.Agent.License != "" {
		t.Fatalf("unexpected details %+v", d)
	}
}

func TestAdminStatsAndActivity(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.svc.Admin.Stats(env.ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := models.AdminStats{
		TotalUsers: 5, TotalCustomers: 2, TotalAgents: 1, PendingAgents: 1,
		TotalProperties: 10, ActiveProperties: 9, PendingProperties: 1,
		TotalAppointments: 5, PendingAppointments: 1, ConfirmedAppointments: 1, CompletedAppointments: 2,
		TotalReviews: 3, PublishedReviews: 2, PendingReviews: 1, AverageRating: 4.5,
	}
	if st != want {
		t.Fatalf("stats mismatch:\n got %+v\nwant %+v", st, want)
	}

	activity, err := env.svc.Admin.RecentActivity(env.ctx, 0)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(activity) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(activity))
	}
	if activity[0].Type != "review" || activity[0].Description != "Hans Lagmay reviewed Garden Lot #5" {
		t.Fatalf("unexpected newest entry %+v", activity[0])
	}
	for i := 1; i < len(activity); i++ {
		if activity[i].Timestamp.After(activity[i-1].Timestamp) {
			t.Fatalf("activity not sorted at %d", i)
		}
	}
}

func TestAgentDashboard(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.svc.Agent.Stats(env.ctx, 2)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalAppointments != 5 || st.ConfirmedAppointments != 1 || st.CompletedAppointments != 2 || st.TotalProperties != 9 {
		t.Fatalf("unexpected stats %+v", st)
	}

	perf, err := env.svc.Agent.Performance(env.ctx, 2)
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if len(perf) != 7 || perf[6].Label != "Sun" {
		t.Fatalf("expected seven days ending on Sunday, got %+v", perf)
	}
	// 2025-11-10 (Monday) holds the cancelled appointment 5.
	if perf[0].Label != "Mon" || perf[0].Value != 1 {
		t.Fatalf("unexpected first point %+v", perf[0])
	}

	top, err := env.svc.Agent.TopProperties(env.ctx, 2, 3)
	if err != nil || len(top) != 3 || top[0].AppointmentCount != 1 {
		t.Fatalf("TopProperties: %+v %v", top, err)
	}
}

func TestCustomerViews(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.svc.Customer.Stats(env.ctx, 3)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := models.CustomerStats{TotalBookings: 3, UpcomingBookings: 1, TotalReviews: 1}
	if st != want {
		t.Fatalf("stats mismatch: got %+v want %+v", st, want)
	}

	d, err := env.svc.Customer.PropertyDetails(env.ctx, 3)
	if err != nil || d.Agent == nil || d.Agent.Name != "Maria Santos" {
		t.Fatalf("PropertyDetails: %+v %v", d, err)
	}

	on, err := env.svc.Customer.ToggleFavorite(env.ctx, 3, 8)
	if err != nil || !on {
		t.Fatalf("ToggleFavorite on: %v %v", on, err)
	}
	favs, err := env.svc.Customer.Favorites(env.ctx, 3)
	if err != nil || len(favs) != 1 || favs[0].Name != "Lakeside House" {
		t.Fatalf("Favorites: %+v %v", favs, err)
	}
	if err := env.svc.Agent.DeleteProperty(env.ctx, 8, 2); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	if favs, _ = env.svc.Customer.Favorites(env.ctx, 3); len(favs) != 0 {
		t.Fatalf("favorite survived property delete: %+v", favs)
	}
	if _, err := env.svc.Customer.ToggleFavorite(env.ctx, 3, 8); !errors.Is(err, models.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestNotificationReadState(t *testing.T) {
	env := newTestEnv(t)

	unread, err := env.svc.Notifications.UnreadCount(env.ctx, 3)
	if err != nil || unread != 2 {
		t.Fatalf("UnreadCount: %d %v", unread, err)
	}
	if _, err := env.svc.Notifications.MarkRead(env.ctx, 1, 2); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("foreign mark read: expected unauthorized, got %v", err)
	}
	n, err := env.svc.Notifications.MarkAllRead(env.ctx, 3)
	if err != nil || n != 2 {
		t.Fatalf("MarkAllRead: %d %v", n, err)
	}
	if unread, _ = env.svc.Notifications.UnreadCount(env.ctx, 3); unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}
}

func TestSendRemindersOncePerAppointment(t *testing.T) {
	env := newTestEnv(t)

	// Seeded appointment 1 was already reminded.
	n, err := env.svc.Reminders.SendReminders(env.ctx, testNow)
	if err != nil || n != 0 {
		t.Fatalf("seeded reminder resent: %d %v", n, err)
	}

	if _, err := env.svc.Agent.ConfirmAppointment(env.ctx, 2, 2); err != nil {
		t.Fatalf("ConfirmAppointment: %v", err)
	}
	eve := time.Date(2025, 11, 20, 18, 0, 0, 0, timeutil.Location())
	if n, err = env.svc.Reminders.SendReminders(env.ctx, eve); err != nil || n != 1 {
		t.Fatalf("expected one reminder, got %d %v", n, err)
	}
	if n, err = env.svc.Reminders.SendReminders(env.ctx, eve); err != nil || n != 0 {
		t.Fatalf("reminder sent twice: %d %v", n, err)
	}
	var found bool
	for _, n := range env.notificationsFor(t, 3) {
		if n.Type == models.NotifyReminder && n.Metadata[models.MetaAppointmentID] == 2 {
			found = true
			if n.Message != "Your appointment is tomorrow at 2:00 PM - 3:00 PM for Garden Lot #5" {
				t.Fatalf("unexpected reminder %q", n.Message)
			}
		}
	}
	if !found {
		t.Fatal("reminder for appointment 2 not stored")
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"email ok", ValidEmail, "a@b.co", true},
		{"email no tld", ValidEmail, "x@y", false},
		{"email space", ValidEmail, "a b@c.de", false},
		{"password ok", ValidPassword, "Abcdefg1", true},
		{"password lowercase", ValidPassword, "abcdefg1", false},
		{"password short", ValidPassword, "Abc1", false},
		{"phone 11", ValidPhone, "0917-123-4567", true},
		{"phone short", ValidPhone, "12345", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Fatalf("%q: got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBookingIDsFollowSeed(t *testing.T) {
	now := time.Date(2025, 11, 16, 10, 0, 0, 0, timeutil.Location())
	sequence := func(g *BookingIDs) []string {
		out := make([]string, 8)
		for i := range out {
			out[i] = g.Next(now)
		}
		return out
	}

	a, b, c := sequence(NewBookingIDs(1)), sequence(NewBookingIDs(1)), sequence(NewBookingIDs(2))
	same := true
	for i := range a {
		if !bookingIDPattern.MatchString(a[i]) || a[i][:11] != "TES-2025-11" {
			t.Fatalf("bad booking id %q", a[i])
		}
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %q vs %q", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatalf("different seeds produced the same ids: %v", a)
	}

	env := newTestEnv(t)
	if env.svc.Customer.BookingIDs == nil {
		t.Fatal("customer service has no booking id generator")
	}
}

func TestAdminDecisionsNameActingAdmin(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := newTestEnvWith(t, storage.NewMemoryStore(), zap.New(core).Sugar())

	if _, err := env.svc.Admin.ApproveAgent(env.ctx, 4, 1); err != nil {
		t.Fatalf("ApproveAgent: %v", err)
	}
	if _, err := env.svc.Admin.ApproveProperty(env.ctx, 3, 1); err != nil {
		t.Fatalf("ApproveProperty: %v", err)
	}
	if err := env.svc.Admin.DeleteUser(env.ctx, 5, 1); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	for _, msg := range []string{
		"approve_agent 4 by admin 1",
		"approve_property 3 by admin 1",
		"delete_user 5 by admin 1",
	} {
		if logs.FilterMessage(msg).Len() != 1 {
			t.Fatalf("missing audit entry %q in %v", msg, logs.All())
		}
	}
	if logs.FilterMessageSnippet("by admin 0").Len() != 0 {
		t.Fatalf("decision logged without its admin: %v", logs.All())
	}
}

func TestSavedActionSurvivesNotificationFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), failKey: storage.KeyNotifications}
	env := newTestEnvWith(t, store, zap.New(core).Sugar())
	store.fail = true

	a, err := env.svc.Customer.BookAppointment(env.ctx, models.BookingRequest{
		CustomerID: 5, PropertyID: 9, Date: "2025-11-20", Time: "1:00 PM - 2:00 PM",
	})
	if err != nil {
		t.Fatalf("BookAppointment: %v", err)
	}
	bookings, err := env.svc.Customer.Bookings(env.ctx, 5, "")
	if err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	var found int
	for _, b := range bookings {
		if b.ID == a.ID {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("appointment %d stored %d times", a.ID, found)
	}

	if _, err := env.svc.Agent.ConfirmAppointment(env.ctx, a.ID, 2); err != nil {
		t.Fatalf("ConfirmAppointment: %v", err)
	}
	if _, err := env.svc.Agent.CompleteAppointment(env.ctx, a.ID, 2); err != nil {
		t.Fatalf("CompleteAppointment: %v", err)
	}
	r, err := env.svc.Customer.SubmitReview(env.ctx, models.ReviewRequest{
		CustomerID: 5, AppointmentID: a.ID, Rating: 4, PropertyRating: 4, AgentRating: 4,
	})
	if err != nil || r.ID == 0 {
		t.Fatalf("SubmitReview: %+v %v", r, err)
	}

	for _, action := range []string{"book_appointment", "confirm_appointment", "complete_appointment", "submit_review"} {
		if logs.FilterMessageSnippet(action+": store").Len() != 1 {
			t.Fatalf("notification failure of %s not logged: %v", action, logs.All())
		}
	}
	if len(env.pushed.got) != 0 {
		t.Fatalf("unsaved notifications were pushed: %d", len(env.pushed.got))
	}
}
