package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// handleCreateSession issues a fresh client session with empty state
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()

	h.logger.Info("Session created", zap.String("session_id", session.ID))

	h.sendSuccessResponse(w, "Sesión creada", map[string]interface{}{
		"session_id": session.ID,
		"created_at": session.CreatedAt,
	})
}

// handleDeleteSession discards a client session and its state
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	h.sessions.Delete(sessionID)
	h.logger.Info("Session deleted", zap.String("session_id", sessionID))

	h.sendSuccessResponse(w, "Sesión eliminada")
}

// handleStoredSession returns the persisted login state
func (h *Handler) handleStoredSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.repos.Users.Session()
	if err != nil {
		h.logger.Error("Failed to read stored session", zap.Error(err))
		h.sendErrorResponse(w, "Error al leer la sesión guardada", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Sesión guardada", session)
}

// handleGetPreferences returns the onboarding and theme flags
func (h *Handler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	onboardingDone, err := h.prefs.OnboardingDone()
	if err != nil {
		h.logger.Error("Failed to read onboarding flag", zap.Error(err))
		h.sendErrorResponse(w, "Error al leer las preferencias", http.StatusInternalServerError)
		return
	}

	darkTheme, err := h.prefs.DarkTheme()
	if err != nil {
		h.logger.Error("Failed to read theme flag", zap.Error(err))
		h.sendErrorResponse(w, "Error al leer las preferencias", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Preferencias", map[string]interface{}{
		"onboarding_done": onboardingDone,
		"dark_theme":      darkTheme,
	})
}

// handleSetOnboarding marks the onboarding flow as seen (or not)
func (h *Handler) handleSetOnboarding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Done bool `json:"done"`
	}
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.prefs.SetOnboardingDone(req.Done); err != nil {
		h.logger.Error("Failed to store onboarding flag", zap.Error(err))
		h.sendErrorResponse(w, "Error al guardar la preferencia", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Preferencia guardada")
}

// handleSetTheme stores the dark theme flag
func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dark bool `json:"dark"`
	}
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.prefs.SetDarkTheme(req.Dark); err != nil {
		h.logger.Error("Failed to store theme flag", zap.Error(err))
		h.sendErrorResponse(w, "Error al guardar la preferencia", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Preferencia guardada")
}
