package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tupyme/internal/repository"
)

// handleCheckout creates an order from the session's cart. The order
// starts in processing; the payment processor moves it to paid and the
// cart is only cleared once that happens.
func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"user_id"`
	}
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	if req.UserID == 0 {
		h.sendErrorResponse(w, "Debes iniciar sesión para pagar", http.StatusUnauthorized)
		return
	}

	items := session.Cart.Items()
	if len(items) == 0 {
		h.sendErrorResponse(w, "El carrito está vacío", http.StatusBadRequest)
		return
	}

	order, err := h.repos.Orders.CreateOrder(session.ID, req.UserID, session.Cart.Subtotal(), items)
	if err != nil {
		h.logger.Error("Failed to create order",
			zap.String("session_id", session.ID),
			zap.Int64("user_id", req.UserID),
			zap.Error(err))
		h.sendErrorResponse(w, "No se pudo crear la orden", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("session_id", session.ID),
		zap.Int64("user_id", req.UserID),
		zap.Int("total", order.Total))

	h.sendSuccessResponse(w, "Orden creada", order)
}

// handleGetOrder returns one order with its authoritative status
func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := requestVar(r, "orderId")

	order, err := h.repos.Orders.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			h.sendErrorResponse(w, "Orden no encontrada", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to fetch order", zap.String("order_id", orderID), zap.Error(err))
		h.sendErrorResponse(w, "Error al consultar la orden", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Orden", order)
}

// handleSessionOrders lists the orders created by one session
func (h *Handler) handleSessionOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	orders, err := h.repos.Orders.GetOrdersBySession(session.ID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.String("session_id", session.ID), zap.Error(err))
		h.sendErrorResponse(w, "Error al listar las órdenes", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "Órdenes", orders)
}

// NotifyOrderPaid is invoked by the payment processor once an order
// settles. It pushes the final status to any websocket watchers and
// removes the ordered lines from the owning session's cart. Lines
// added after checkout are not part of the order and stay put.
func (h *Handler) NotifyOrderPaid(orderID string) {
	order, err := h.repos.Orders.GetOrderByID(orderID)
	if err != nil {
		h.logger.Error("Failed to load settled order", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	if session, ok := h.sessions.Get(order.SessionID); ok {
		for _, item := range order.Items {
			session.Cart.RemoveItem(item.ID)
		}
		h.logger.Info("Ordered items removed from cart",
			zap.String("order_id", orderID),
			zap.String("session_id", order.SessionID),
			zap.Int("items", len(order.Items)))
	}

	h.orderHub.notify(order)
}
