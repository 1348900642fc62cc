package handler

import (
	"net/http"

	"go.uber.org/zap"

	"tupyme/internal/domain"
)

// handleListTickets returns the tickets of one user (?userId=...)
func (h *Handler) handleListTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseID(w, r.URL.Query().Get("userId"))
	if !ok {
		return
	}

	tickets, err := h.repos.Tickets.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list tickets", zap.Int64("user_id", userID), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Tickets", tickets)
}

// handleGetTicket returns one ticket
func (h *Handler) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.parseID(w, requestVar(r, "ticketId"))
	if !ok {
		return
	}

	ticket, err := h.repos.Tickets.Get(r.Context(), ticketID)
	if err != nil {
		h.logger.Error("Failed to fetch ticket", zap.Int64("ticket_id", ticketID), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Ticket", ticket)
}

// handleUpdateTicket edits the subject, description or status
func (h *Handler) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.parseID(w, requestVar(r, "ticketId"))
	if !ok {
		return
	}

	var req domain.UpdateTicketRequest
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	ticket, err := h.repos.Tickets.Update(r.Context(), ticketID, req)
	if err != nil {
		h.logger.Error("Failed to update ticket", zap.Int64("ticket_id", ticketID), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Ticket actualizado", ticket)
}

// handleDeleteTicket removes one ticket
func (h *Handler) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.parseID(w, requestVar(r, "ticketId"))
	if !ok {
		return
	}

	if err := h.repos.Tickets.Delete(r.Context(), ticketID); err != nil {
		h.logger.Error("Failed to delete ticket", zap.Int64("ticket_id", ticketID), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Ticket eliminado")
}

// handleTicketField updates one new-ticket form field
func (h *Handler) handleTicketField(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	switch req.Field {
	case "subject":
		session.Ticket().SetSubject(req.Value)
	case "description":
		session.Ticket().SetDescription(req.Value)
	default:
		h.sendErrorResponse(w, "Campo desconocido: "+req.Field, http.StatusBadRequest)
		return
	}

	h.sendSuccessResponse(w, "Campo actualizado", session.Ticket().Snapshot())
}

// handleTicketSnapshot returns the current new-ticket form state
func (h *Handler) handleTicketSnapshot(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sendSuccessResponse(w, "Estado del formulario", session.Ticket().Snapshot())
}

// handleTicketSubmit creates the ticket through the form state machine
func (h *Handler) handleTicketSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		UserID    int64  `json:"user_id"`
		CompanyID *int64 `json:"company_id,omitempty"`
	}
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	if req.UserID == 0 {
		h.sendErrorResponse(w, "Debes iniciar sesión para crear un ticket", http.StatusUnauthorized)
		return
	}

	snapshot := session.Ticket().Submit(r.Context(), req.UserID, req.CompanyID)
	if snapshot.Success {
		h.logger.Info("Ticket created",
			zap.String("session_id", session.ID),
			zap.Int64("ticket_id", snapshot.TicketID))
	}

	h.sendSuccessResponse(w, "Formulario enviado", snapshot)
}

// handleTicketReset replaces the new-ticket form with a fresh one
func (h *Handler) handleTicketReset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sessions.ResetTicket(session)
	h.sendSuccessResponse(w, "Formulario reiniciado", session.Ticket().Snapshot())
}
