package repositories

import (
	"strings"
	"time"

	"tesBack/internal/models"
)

func filterItems[T any](items []T, preds ...func(T) bool) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

func containsFold(value, term string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

// statusSet reports whether a status filter is active. "all" and "" mean no filter.
func statusSet(status string) bool {
	status = strings.TrimSpace(status)
	return status != "" && status != "all"
}

func userPredicates(f models.UserFilter) []func(models.User) bool {
	var preds []func(models.User) bool
	if statusSet(f.Role) {
		preds = append(preds, func(u models.User) bool { return u.Role == f.Role })
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, func(u models.User) bool {
			return containsFold(u.Name, term) || containsFold(u.Email, term)
		})
	}
	return preds
}

func propertyPredicates(f models.PropertyFilter) []func(models.Property) bool {
	var preds []func(models.Property) bool
	if f.AgentID != 0 {
		preds = append(preds, func(p models.Property) bool { return p.AgentID == f.AgentID })
	}
	if statusSet(f.Status) {
		preds = append(preds, func(p models.Property) bool { return p.Status == f.Status })
	}
	if statusSet(f.Type) {
		preds = append(preds, func(p models.Property) bool { return p.Type == f.Type })
	}
	if f.MinPrice > 0 {
		preds = append(preds, func(p models.Property) bool { return p.Price >= f.MinPrice })
	}
	if f.MaxPrice > 0 {
		preds = append(preds, func(p models.Property) bool { return p.Price <= f.MaxPrice })
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		preds = append(preds, func(p models.Property) bool { return containsFold(p.Location, loc) })
	}
	if f.Bedrooms > 0 {
		preds = append(preds, func(p models.Property) bool { return p.Bedrooms != nil && *p.Bedrooms >= f.Bedrooms })
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, func(p models.Property) bool {
			return containsFold(p.Name, term) || containsFold(p.Location, term) || containsFold(p.Type, term)
		})
	}
	return preds
}

func appointmentPredicates(f models.AppointmentFilter, now time.Time) []func(models.Appointment) bool {
	var preds []func(models.Appointment) bool
	if f.AgentID != 0 {
		preds = append(preds, func(a models.Appointment) bool { return a.AgentID == f.AgentID })
	}
	if f.CustomerID != 0 {
		preds = append(preds, func(a models.Appointment) bool { return a.CustomerID == f.CustomerID })
	}
	if !statusSet(f.Status) {
		return preds
	}
	today := now.Format(models.DateLayout)
	switch f.Status {
	case models.DayToday:
		preds = append(preds, func(a models.Appointment) bool { return a.Date == today })
	case models.DayUpcoming:
		preds = append(preds, func(a models.Appointment) bool { return a.Date >= today })
	case models.DayPast:
		preds = append(preds, func(a models.Appointment) bool { return a.Date < today })
	default:
		preds = append(preds, func(a models.Appointment) bool { return a.Status == f.Status })
	}
	return preds
}

func reviewPredicates(f models.ReviewFilter) []func(models.Review) bool {
	var preds []func(models.Review) bool
	if f.AgentID != 0 {
		preds = append(preds, func(r models.Review) bool { return r.AgentID == f.AgentID })
	}
	if f.CustomerID != 0 {
		preds = append(preds, func(r models.Review) bool { return r.CustomerID == f.CustomerID })
	}
	if f.PropertyID != 0 {
		preds = append(preds, func(r models.Review) bool { return r.PropertyID == f.PropertyID })
	}
	if statusSet(f.Status) {
		preds = append(preds, func(r models.Review) bool { return r.Status == f.Status })
	}
	return preds
}
