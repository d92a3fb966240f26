package handlers

import (
	"context"
	"net/http"

	"tesBack/internal/models"
	"tesBack/internal/services"
)

type AdminHandler struct {
	Service *services.AdminService
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.Service.ListUsers(r.Context(), models.UserFilter{Role: q.Get("role"), Search: q.Get("search")})
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	adminID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteUser(r.Context(), id, adminID); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *AdminHandler) PendingAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Service.PendingAgents(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, agents)
}

func (h *AdminHandler) ApproveAgent(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.Service.ApproveAgent)
}

func (h *AdminHandler) RejectAgent(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.Service.RejectAgent)
}

func (h *AdminHandler) userAction(w http.ResponseWriter, r *http.Request, action func(context.Context, int, int) (models.User, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	adminID, ok := caller(w, r)
	if !ok {
		return
	}
	user, err := action(r.Context(), id, adminID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *AdminHandler) Properties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.ListProperties(r.Context(), propertyFilter(r))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, properties)
}

func (h *AdminHandler) ApproveProperty(w http.ResponseWriter, r *http.Request) {
	h.propertyAction(w, r, h.Service.ApproveProperty)
}

func (h *AdminHandler) RejectProperty(w http.ResponseWriter, r *http.Request) {
	h.propertyAction(w, r, h.Service.RejectProperty)
}

func (h *AdminHandler) propertyAction(w http.ResponseWriter, r *http.Request, action func(context.Context, int, int) (models.Property, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	adminID, ok := caller(w, r)
	if !ok {
		return
	}
	p, err := action(r.Context(), id, adminID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *AdminHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	appointments, err := h.Service.ListAppointments(r.Context(), models.AppointmentFilter{
		Status:     q.Get("status"),
		AgentID:    queryInt(r, "agent_id"),
		CustomerID: queryInt(r, "customer_id"),
	})
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, appointments)
}

func (h *AdminHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListReviews(r.Context(), models.ReviewFilter{
		Status:     r.URL.Query().Get("status"),
		AgentID:    queryInt(r, "agent_id"),
		CustomerID: queryInt(r, "customer_id"),
		PropertyID: queryInt(r, "property_id"),
	})
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, reviews)
}

func (h *AdminHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	adminID, ok := caller(w, r)
	if !ok {
		return
	}
	review, err := h.Service.ApproveReview(r.Context(), id, adminID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, review)
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	adminID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteReview(r.Context(), id, adminID); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Stats(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Service.RecentActivity(r.Context(), queryInt(r, "limit"))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, activity)
}
