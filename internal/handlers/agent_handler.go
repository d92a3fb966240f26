package handlers

import (
	"context"
	"net/http"

	"tesBack/internal/models"
	"tesBack/internal/services"
)

// AgentHandler serves the signed-in agent's own workspace.
type AgentHandler struct {
	Service *services.AgentService
}

func (h *AgentHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	appointments, err := h.Service.Appointments(r.Context(), agentID, r.URL.Query().Get("status"))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, appointments)
}

func (h *AgentHandler) Properties(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	properties, err := h.Service.Properties(r.Context(), agentID, r.URL.Query().Get("status"))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, properties)
}

func (h *AgentHandler) AddProperty(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	var in models.PropertyInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.Service.AddProperty(r.Context(), agentID, in)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *AgentHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.PropertyInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.Service.UpdateProperty(r.Context(), id, agentID, in)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *AgentHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteProperty(r.Context(), id, agentID); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *AgentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.appointmentAction(w, r, h.Service.ConfirmAppointment)
}

func (h *AgentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.appointmentAction(w, r, h.Service.CompleteAppointment)
}

func (h *AgentHandler) appointmentAction(w http.ResponseWriter, r *http.Request, action func(context.Context, int, int) (models.Appointment, error)) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := action(r.Context(), id, agentID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *AgentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	st, err := h.Service.Stats(r.Context(), agentID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *AgentHandler) Performance(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	points, err := h.Service.Performance(r.Context(), agentID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, points)
}

func (h *AgentHandler) TopProperties(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	top, err := h.Service.TopProperties(r.Context(), agentID, queryInt(r, "limit"))
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, top)
}

func (h *AgentHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	agentID, ok := caller(w, r)
	if !ok {
		return
	}
	reviews, err := h.Service.Reviews(r.Context(), agentID)
	if err != nil {
		failErr(w, err)
		return
	}
	rating, err := h.Service.Rating(r.Context(), agentID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, struct {
		Rating  float64         `json:"rating"`
		Reviews []models.Review `json:"reviews"`
	}{rating, reviews})
}
