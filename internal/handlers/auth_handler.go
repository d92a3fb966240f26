package handlers

import (
	"errors"
	"net/http"

	"tesBack/internal/models"
	"tesBack/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.Register(r.Context(), req)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusCreated, user)
}

// SignIn answers 401 for every credential failure.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.Service.Login(r.Context(), req)
	if errors.Is(err, models.ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, models.Fail(err))
		return
	}
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.Logout(r.Context(), userID); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	session, err := h.Service.CurrentUser(r.Context(), userID)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, session)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.ForgotPassword(r.Context(), req.Email); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.ResetPassword(r.Context(), req); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var upd models.ProfileUpdate
	if !decode(w, r, &upd) {
		return
	}
	user, err := h.Service.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.UpdatePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.ChangePassword(r.Context(), userID, req); err != nil {
		failErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}
