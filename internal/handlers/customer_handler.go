package handlers

import (
	"net/http"

	"tesBack/internal/models"
	"tesBack/internal/services"
)

type CustomerHandler struct {
	Service *services.CustomerService
}

// Properties lists what customers may book. It needs no session.
func (h *CustomerHandler) Properties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.AvailableProperties(r.Context(), propertyFilter(r))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, properties)
}

func (h *CustomerHandler) Property(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	details, err := h.Service.PropertyDetails(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, details)
}

func (h *CustomerHandler) Book(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.BookingRequest
	if !decode(w, r, &req) {
		return
	}
	req.CustomerID = customerID
	a, err := h.Service.BookAppointment(r.Context(), req)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusCreated, a)
}

func (h *CustomerHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	appointments, err := h.Service.Bookings(r.Context(), customerID, r.URL.Query().Get("status"))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, appointments)
}

// Appointment returns the joined view. Only the two parties and admins may read it.
func (h *CustomerHandler) Appointment(w http.ResponseWriter, r *http.Request) {
	userID, role, _ := Identity(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	details, err := h.Service.AppointmentDetails(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	if role != models.RoleAdmin && userID != details.CustomerID && userID != details.AgentID {
		failErr(w, models.ErrNotAuthorized)
		return
	}
	respond(w, http.StatusOK, details)
}

func (h *CustomerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.Service.CancelAppointment(r.Context(), id, customerID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *CustomerHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.RescheduleRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.RescheduleAppointment(r.Context(), id, customerID, req)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *CustomerHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !decode(w, r, &req) {
		return
	}
	req.CustomerID = customerID
	review, err := h.Service.SubmitReview(r.Context(), req)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusCreated, review)
}

func (h *CustomerHandler) CanReview(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	can, err := h.Service.CanReviewAppointment(r.Context(), id, customerID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"can_review": can})
}

func (h *CustomerHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	reviews, err := h.Service.Reviews(r.Context(), customerID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, reviews)
}

func (h *CustomerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	st, err := h.Service.Stats(r.Context(), customerID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *CustomerHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	on, err := h.Service.ToggleFavorite(r.Context(), customerID, id)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"favorite": on})
}

func (h *CustomerHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	customerID, ok := caller(w, r)
	if !ok {
		return
	}
	properties, err := h.Service.Favorites(r.Context(), customerID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, properties)
}
