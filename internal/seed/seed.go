// Package seed writes the demo marketplace data into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"tesBack/internal/models"
	"tesBack/internal/repositories"
	"tesBack/internal/storage"
	"tesBack/internal/timeutil"
)

// Hasher turns a plaintext seed password into its stored form.
type Hasher func(password string) (string, error)

// Bootstrap writes the seed collections unless the initialization flag is
// already set. It reports whether anything was written.
func Bootstrap(ctx context.Context, store storage.Store, hash Hasher) (bool, error) {
	var initialized bool
	if _, err := store.Get(ctx, storage.KeyInitialized, &initialized); err != nil {
		return false, fmt.Errorf("read init flag: %w", err)
	}
	if initialized {
		return false, nil
	}

	users := Users()
	for i := range users {
		h, err := hash(users[i].Password)
		if err != nil {
			return false, err
		}
		users[i].Password = h
	}
	reviews := Reviews()
	for i := range users {
		if users[i].IsAgent() {
			users[i].Agent.Rating = repositories.AverageAgentRating(reviews, users[i].ID)
		}
	}

	collections := []struct {
		key   string
		value interface{}
	}{
		{storage.KeyUsers, users},
		{storage.KeyProperties, Properties()},
		{storage.KeyAppointments, Appointments()},
		{storage.KeyReviews, reviews},
		{storage.KeyNotifications, Notifications()},
		{storage.KeyFavorites, []models.Favorite{}},
	}
	for _, c := range collections {
		if err := store.Set(ctx, c.key, c.value); err != nil {
			return false, fmt.Errorf("seed %s: %w", c.key, err)
		}
	}
	if err := store.Set(ctx, storage.KeyInitialized, true); err != nil {
		return false, fmt.Errorf("set init flag: %w", err)
	}
	return true, nil
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(models.DateLayout, s, timeutil.Location())
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, timeutil.Location())
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

func agent(license, agency, status string) *models.AgentProfile {
	return &models.AgentProfile{License: license, Agency: agency, Status: status}
}

// Users returns the demo accounts with plaintext passwords.
func Users() []models.User {
	return []models.User{
		{ID: 1, Name: "Admin User", Email: "admin@tesrealestate.com", Password: "Admin123!", Role: models.RoleAdmin,
			Phone: "09171234567", CreatedAt: day("2025-01-15")},
		{ID: 2, Name: "Juan Dela Cruz", Email: "juan@tesrealestate.com", Password: "Agent123!", Role: models.RoleAgent,
			Phone: "09181234567", Agent: agent("REA-2025-1234", "TES Real Estate", models.AgentApproved), CreatedAt: day("2025-02-01")},
		{ID: 3, Name: "Hans Lagmay", Email: "hans@tesrealestate.com", Password: "Customer123!", Role: models.RoleCustomer,
			Phone: "09191234567", Customer: &models.CustomerProfile{Address: "Manila, Philippines"}, CreatedAt: day("2025-03-10")},
		{ID: 4, Name: "Maria Santos", Email: "maria@tesrealestate.com", Password: "Agent123!", Role: models.RoleAgent,
			Phone: "09201234567", Agent: agent("REA-2025-9012", "Prime Properties Inc", models.AgentPending), CreatedAt: day("2025-10-15")},
		{ID: 5, Name: "Pedro Reyes", Email: "pedro@tesrealestate.com", Password: "Customer123!", Role: models.RoleCustomer,
			Phone: "09211234567", Customer: &models.CustomerProfile{Address: "Quezon City, Philippines"}, CreatedAt: day("2025-05-20")},
	}
}

func Properties() []models.Property {
	const (
		building = "building-placeholder.jpg"
		lot      = "lot-placeholder.jpg"
		house    = "house-placeholder.jpg"
	)
	return []models.Property{
		{ID: 1, Name: "Palm Residence", Type: "Condominium", Price: 8500000, Location: "Makati City, Metro Manila",
			Bedrooms: intPtr(2), Bathrooms: intPtr(2), FloorArea: intPtr(85),
			Description: "Modern condominium unit with stunning city views. Fully furnished with premium amenities including swimming pool, gym, and 24/7 security.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{building}, CreatedAt: day("2025-06-01")},
		{ID: 2, Name: "Garden Lot #5", Type: "Lot", Price: 2500000, Location: "Laguna, Calabarzon", LotArea: intPtr(350),
			Description: "Prime residential lot in a peaceful subdivision. Perfect for building your dream home. Near schools, hospitals, and commercial centers.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{lot}, CreatedAt: day("2025-06-15")},
		{ID: 3, Name: "Sunrise Villa", Type: "House", Price: 6500000, Location: "Quezon City, Metro Manila",
			Bedrooms: intPtr(3), Bathrooms: intPtr(2), FloorArea: intPtr(120),
			Description: "Beautiful single-detached house with spacious living areas. Well-maintained garden and secure neighborhood.",
			AgentID:     4, Status: models.PropertyPending, Images: []string{house}, CreatedAt: day("2025-10-20")},
		{ID: 4, Name: "Bayview Condo", Type: "Condominium", Price: 7200000, Location: "Pasay City, Metro Manila",
			Bedrooms: intPtr(2), Bathrooms: intPtr(2), FloorArea: intPtr(75),
			Description: "Luxurious condo unit with breathtaking bay views. Walking distance to malls and entertainment centers.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{building}, CreatedAt: day("2025-07-01")},
		{ID: 5, Name: "Mountain View Townhouse", Type: "Townhouse", Price: 5800000, Location: "Antipolo, Rizal",
			Bedrooms: intPtr(3), Bathrooms: intPtr(3), FloorArea: intPtr(110),
			Description: "Cozy townhouse with mountain views. Perfect for families looking for a peaceful environment.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{house}, CreatedAt: day("2025-07-15")},
		{ID: 6, Name: "Executive Suite", Type: "Condominium", Price: 12000000, Location: "BGC, Taguig City",
			Bedrooms: intPtr(3), Bathrooms: intPtr(3), FloorArea: intPtr(150),
			Description: "Premium executive suite in the heart of BGC. Top-of-the-line finishes and world-class amenities.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{building}, CreatedAt: day("2025-08-01")},
		{ID: 7, Name: "Countryside Lot", Type: "Lot", Price: 3200000, Location: "Cavite, Calabarzon", LotArea: intPtr(500),
			Description: "Spacious lot in a developing area. Great investment opportunity with high appreciation potential.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{lot}, CreatedAt: day("2025-08-15")},
		{ID: 8, Name: "Lakeside House", Type: "House", Price: 9500000, Location: "Talisay, Batangas",
			Bedrooms: intPtr(4), Bathrooms: intPtr(3), FloorArea: intPtr(180),
			Description: "Stunning lakeside property with private dock. Perfect weekend retreat or permanent residence.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{house}, CreatedAt: day("2025-09-01")},
		{ID: 9, Name: "Urban Loft", Type: "Condominium", Price: 4500000, Location: "Mandaluyong City, Metro Manila",
			Bedrooms: intPtr(1), Bathrooms: intPtr(1), FloorArea: intPtr(45),
			Description: "Modern studio loft perfect for young professionals. Near business districts and transport hubs.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{building}, CreatedAt: day("2025-09-15")},
		{ID: 10, Name: "Family Townhouse", Type: "Townhouse", Price: 6800000, Location: "Parañaque City, Metro Manila",
			Bedrooms: intPtr(3), Bathrooms: intPtr(2), FloorArea: intPtr(130),
			Description: "Spacious townhouse in a family-friendly community. Near schools, parks, and shopping centers.",
			AgentID:     2, Status: models.PropertyActive, Images: []string{house}, CreatedAt: day("2025-10-01")},
	}
}

func Appointments() []models.Appointment {
	return []models.Appointment{
		{ID: 1, CustomerID: 3, AgentID: 2, PropertyID: 1, Date: "2025-11-17", Time: "10:00 AM - 11:00 AM",
			Status: models.AppointmentConfirmed, BookingID: "TES-2025-11-001", CreatedAt: day("2025-11-05")},
		{ID: 2, CustomerID: 3, AgentID: 2, PropertyID: 2, Date: "2025-11-21", Time: "2:00 PM - 3:00 PM",
			Status: models.AppointmentPending, BookingID: "TES-2025-11-002", Notes: "Please bring property documents", CreatedAt: day("2025-11-06")},
		{ID: 3, CustomerID: 5, AgentID: 2, PropertyID: 4, Date: "2025-10-15", Time: "9:00 AM - 10:00 AM",
			Status: models.AppointmentCompleted, BookingID: "TES-2025-10-001", CreatedAt: day("2025-10-01")},
		{ID: 4, CustomerID: 5, AgentID: 2, PropertyID: 5, Date: "2025-10-20", Time: "3:00 PM - 4:00 PM",
			Status: models.AppointmentCompleted, BookingID: "TES-2025-10-002", CreatedAt: day("2025-10-05")},
		{ID: 5, CustomerID: 3, AgentID: 2, PropertyID: 6, Date: "2025-11-10", Time: "11:00 AM - 12:00 PM",
			Status: models.AppointmentCancelled, BookingID: "TES-2025-11-003", Notes: "Customer request", CreatedAt: day("2025-10-28")},
	}
}

func Reviews() []models.Review {
	return []models.Review{
		{ID: 1, CustomerID: 5, PropertyID: 1, AppointmentID: 3, AgentID: 2, Rating: 5, PropertyRating: 5, AgentRating: 5,
			Comment: "Excellent property with great location. The agent was very professional and helpful throughout the entire process. Highly recommended!",
			Images:  []string{}, Status: models.ReviewPublished, CreatedAt: day("2025-10-20")},
		{ID: 2, CustomerID: 5, PropertyID: 5, AppointmentID: 4, AgentID: 2, Rating: 4, PropertyRating: 4, AgentRating: 5,
			Comment: "Beautiful townhouse with amazing views. The location is perfect for families. Agent was knowledgeable and patient.",
			Images:  []string{}, Status: models.ReviewPublished, CreatedAt: day("2025-10-25")},
		{ID: 3, CustomerID: 3, PropertyID: 2, AppointmentID: 2, AgentID: 2, Rating: 5, PropertyRating: 5, AgentRating: 5,
			Comment: "Great lot with excellent potential. Looking forward to building my dream house here!",
			Images:  []string{}, Status: models.ReviewPending, CreatedAt: day("2025-11-07")},
	}
}

func Notifications() []models.Notification {
	return []models.Notification{
		{ID: 1, UserID: 3, Type: models.NotifyBookingConfirmed, Title: "Booking Confirmed",
			Message:  "Your appointment for Palm Residence has been confirmed for Nov 17, 2025 at 10:00 AM",
			Metadata: map[string]int{models.MetaAppointmentID: 1}, CreatedAt: at("2025-11-05T10:30:00")},
		{ID: 2, UserID: 3, Type: models.NotifyReminder, Title: "Appointment Reminder",
			Message:  "Your appointment is tomorrow at 10:00 AM for Palm Residence",
			Metadata: map[string]int{models.MetaAppointmentID: 1}, CreatedAt: at("2025-11-16T09:00:00")},
		{ID: 3, UserID: 3, Type: models.NotifyNewProperty, Title: "New Property Available",
			Message:  "Check out the new Executive Suite in BGC that matches your preferences",
			Metadata: map[string]int{models.MetaPropertyID: 6}, Read: true, CreatedAt: at("2025-08-01T14:00:00")},
		{ID: 4, UserID: 2, Type: models.NotifyReviewReceived, Title: "New Review Received",
			Message:  "Pedro Reyes left a 5-star review for Palm Residence",
			Metadata: map[string]int{models.MetaReviewID: 1}, CreatedAt: at("2025-10-20T16:00:00")},
		{ID: 5, UserID: 2, Type: models.NotifyAppointmentRequest, Title: "New Appointment Request",
			Message:  "Hans Lagmay requested an appointment for Garden Lot #5",
			Metadata: map[string]int{models.MetaAppointmentID: 2}, CreatedAt: at("2025-11-06T11:00:00")},
		{ID: 6, UserID: 1, Type: models.NotifyAgentPending, Title: "New Agent Application",
			Message:  "Maria Santos has applied to become an agent",
			Metadata: map[string]int{models.MetaUserID: 4}, CreatedAt: at("2025-10-15T09:00:00")},
		{ID: 7, UserID: 1, Type: models.NotifyPropertyPending, Title: "Property Pending Approval",
			Message:  "Sunrise Villa is waiting for approval",
			Metadata: map[string]int{models.MetaPropertyID: 3}, CreatedAt: at("2025-10-20T10:00:00")},
	}
}
