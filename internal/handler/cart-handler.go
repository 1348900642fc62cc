package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tupyme/internal/domain"
	"tupyme/internal/state"
)

// cartView is the cart as returned to the client. The subtotal is
// recomputed from the lines on every read.
type cartView struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal int               `json:"subtotal"`
	Count    int               `json:"count"`
}

func newCartView(cart *state.Cart) cartView {
	items := cart.Items()
	return cartView{
		Items:    items,
		Subtotal: cart.Subtotal(),
		Count:    len(items),
	}
}

// handleCartView returns the current cart contents and subtotal
func (h *Handler) handleCartView(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.sendSuccessResponse(w, "Carrito", newCartView(session.Cart))
}

// handleCartAdd adds one catalog service to the cart. Per-person
// services must carry a quantity; it is clamped to at least one.
func (h *Handler) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity,omitempty"`
	}
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	svc, found := findCatalogService(req.Name)
	if !found {
		h.sendErrorResponse(w, "Servicio desconocido: "+req.Name, http.StatusBadRequest)
		return
	}

	if svc.Price == domain.PriceVariable {
		h.sendErrorResponse(w, "Este servicio se cotiza como Plan Full", http.StatusBadRequest)
		return
	}

	if svc.PerPerson {
		svc = state.FinalizeQuantity(svc, req.Quantity)
	}

	item, err := session.Cart.AddItem(svc)
	if err != nil {
		h.logger.Error("Failed to add cart item", zap.String("service", req.Name), zap.Error(err))
		h.sendErrorResponse(w, "No se pudo agregar el servicio", http.StatusBadRequest)
		return
	}

	h.logger.Info("Cart item added",
		zap.String("session_id", session.ID),
		zap.String("item_id", item.ID),
		zap.String("service", item.Title),
		zap.Int("price", item.Price))

	h.sendSuccessResponse(w, "Servicio agregado", newCartView(session.Cart))
}

func findCatalogService(name string) (domain.CatalogService, bool) {
	for _, svc := range domain.DefaultCatalog() {
		if strings.EqualFold(svc.Name, name) {
			return svc, true
		}
	}
	return domain.CatalogService{}, false
}

// handleCartRemove drops one line from the cart. Removing a line that
// is already gone is a no-op and still succeeds.
func (h *Handler) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	itemID := requestVar(r, "itemId")
	session.Cart.RemoveItem(itemID)

	h.sendSuccessResponse(w, "Servicio eliminado", newCartView(session.Cart))
}

// handleCartClear empties the cart
func (h *Handler) handleCartClear(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	session.Cart.Clear()
	h.sendSuccessResponse(w, "Carrito vaciado", newCartView(session.Cart))
}
