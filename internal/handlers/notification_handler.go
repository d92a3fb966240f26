package handlers

import (
	"net/http"

	"tesBack/internal/notify"
	"tesBack/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
	Hub     *notify.Hub
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ns, err := h.Service.ForUser(r.Context(), userID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, ns)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	n, err := h.Service.UnreadCount(r.Context(), userID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"unread": n})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	n, err := h.Service.MarkRead(r.Context(), id, userID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	n, err := h.Service.MarkAllRead(r.Context(), userID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"updated": n})
}

// Live upgrades to a websocket that receives new notifications as they are stored.
func (h *NotificationHandler) Live(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	h.Hub.ServeWS(w, r, userID)
}
