package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tupyme/internal/domain"
	"tupyme/internal/repository"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	clientSendBuf = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderStatusMessage is the payload pushed to order watchers
type OrderStatusMessage struct {
	Type    string     `json:"type"` // "order_status"
	OrderID string     `json:"order_id"`
	Status  string     `json:"status"`
	Total   int        `json:"total"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`
}

func newOrderStatusMessage(order *domain.Order) OrderStatusMessage {
	return OrderStatusMessage{
		Type:    "order_status",
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.Total,
		PaidAt:  order.PaidAt,
	}
}

type orderClient struct {
	conn *websocket.Conn
	send chan []byte
}

// orderHub tracks which websocket clients watch which order. Watchers
// are dropped after the final status is pushed.
type orderHub struct {
	mu       sync.Mutex
	watchers map[string]map[*orderClient]struct{}
	logger   *zap.Logger
}

func newOrderHub(logger *zap.Logger) *orderHub {
	return &orderHub{
		watchers: make(map[string]map[*orderClient]struct{}),
		logger:   logger,
	}
}

func (hub *orderHub) register(orderID string, client *orderClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.watchers[orderID] == nil {
		hub.watchers[orderID] = make(map[*orderClient]struct{})
	}
	hub.watchers[orderID][client] = struct{}{}
}

func (hub *orderHub) unregister(orderID string, client *orderClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if clients, ok := hub.watchers[orderID]; ok {
		if _, watching := clients[client]; watching {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(hub.watchers, orderID)
		}
	}
}

// notify pushes the order's status to every watcher and releases them:
// paid is final, there is nothing further to wait for.
func (hub *orderHub) notify(order *domain.Order) {
	data, err := json.Marshal(newOrderStatusMessage(order))
	if err != nil {
		hub.logger.Error("Failed to marshal order status", zap.Error(err))
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	clients := hub.watchers[order.ID]
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// slow client, drop it
		}
		delete(clients, client)
		close(client.send)
	}
	delete(hub.watchers, order.ID)
}

func (c *orderClient) readPump(hub *orderHub, orderID string) {
	defer func() {
		hub.unregister(orderID, c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// clients never send application messages on this socket; the read
	// loop only services pongs and detects the close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *orderClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleOrderStatusWS upgrades the connection and streams the order's
// status. The current state is pushed immediately; if the order is
// still processing the client stays registered until settlement.
func (h *Handler) handleOrderStatusWS(w http.ResponseWriter, r *http.Request) {
	orderID := requestVar(r, "orderId")

	order, err := h.repos.Orders.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			h.sendErrorResponse(w, "Orden no encontrada", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to fetch order for watch", zap.String("order_id", orderID), zap.Error(err))
		h.sendErrorResponse(w, "Error al consultar la orden", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", zap.Error(err))
		return
	}

	client := &orderClient{
		conn: conn,
		send: make(chan []byte, clientSendBuf),
	}

	data, err := json.Marshal(newOrderStatusMessage(order))
	if err != nil {
		h.logger.Error("Failed to marshal order status", zap.Error(err))
		_ = conn.Close()
		return
	}
	client.send <- data

	if order.Status == domain.OrderStatusProcessing {
		h.watchOrder(orderID, client)
		go client.readPump(h.orderHub, orderID)
	} else {
		// final status already pushed, nothing further to wait for
		close(client.send)
	}

	go client.writePump()
}

// watchOrder registers the client and then re-checks the order: the
// payment processor may settle between the initial fetch and the
// register, and that settlement must still reach the client.
func (h *Handler) watchOrder(orderID string, client *orderClient) {
	h.orderHub.register(orderID, client)

	current, err := h.repos.Orders.GetOrderByID(orderID)
	if err != nil {
		h.logger.Error("Failed to re-check watched order", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	if current.Status != domain.OrderStatusProcessing {
		h.orderHub.notify(current)
	}
}
