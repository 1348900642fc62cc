package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// fieldUpdateRequest carries one form field mutation
type fieldUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// handleLoginField updates one login form field and returns the new snapshot
func (h *Handler) handleLoginField(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	switch req.Field {
	case "email":
		session.Login().SetEmail(req.Value)
	case "password":
		session.Login().SetPassword(req.Value)
	default:
		h.sendErrorResponse(w, "Campo desconocido: "+req.Field, http.StatusBadRequest)
		return
	}

	h.sendSuccessResponse(w, "Campo actualizado", session.Login().Snapshot())
}

// handleLoginSnapshot returns the current login form state
func (h *Handler) handleLoginSnapshot(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sendSuccessResponse(w, "Estado del formulario", session.Login().Snapshot())
}

// handleLoginSubmit runs the login submission and returns the outcome
func (h *Handler) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	snapshot := session.Login().Submit(r.Context())
	if snapshot.Success {
		h.logger.Info("Login succeeded",
			zap.String("session_id", session.ID),
			zap.Int64("user_id", snapshot.UserID))
	}

	h.sendSuccessResponse(w, "Formulario enviado", snapshot)
}

// handleLoginReset replaces the login form with a fresh one
func (h *Handler) handleLoginReset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sessions.ResetLogin(session)
	h.sendSuccessResponse(w, "Formulario reiniciado", session.Login().Snapshot())
}

// handleRegisterField updates one registration form field
func (h *Handler) handleRegisterField(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	switch req.Field {
	case "name":
		session.Register().SetName(req.Value)
	case "email":
		session.Register().SetEmail(req.Value)
	case "phone":
		session.Register().SetPhone(req.Value)
	case "password":
		session.Register().SetPassword(req.Value)
	case "confirm_password":
		session.Register().SetConfirmPassword(req.Value)
	default:
		h.sendErrorResponse(w, "Campo desconocido: "+req.Field, http.StatusBadRequest)
		return
	}

	h.sendSuccessResponse(w, "Campo actualizado", session.Register().Snapshot())
}

// handleRegisterSnapshot returns the current registration form state
func (h *Handler) handleRegisterSnapshot(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sendSuccessResponse(w, "Estado del formulario", session.Register().Snapshot())
}

// handleRegisterSubmit runs the registration submission
func (h *Handler) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	snapshot := session.Register().Submit(r.Context())
	if snapshot.Success {
		h.logger.Info("Registration succeeded",
			zap.String("session_id", session.ID),
			zap.Int64("user_id", snapshot.UserID))
	}

	h.sendSuccessResponse(w, "Formulario enviado", snapshot)
}

// handleRegisterReset replaces the registration form with a fresh one
func (h *Handler) handleRegisterReset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sessions.ResetRegister(session)
	h.sendSuccessResponse(w, "Formulario reiniciado", session.Register().Snapshot())
}

// handleLogout clears the persisted login state
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.repos.Users.Logout(); err != nil {
		h.logger.Error("Failed to clear stored session", zap.Error(err))
		h.sendErrorResponse(w, "Error al cerrar sesión", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Sesión cerrada")
}

// handleGetUserByEmail proxies the profile lookup
func (h *Handler) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := requestVar(r, "email")

	user, err := h.repos.Users.GetUserByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("Failed to fetch user", zap.String("email", email), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Usuario", user)
}
