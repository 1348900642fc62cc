package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tupyme/config"
	"tupyme/internal/backend"
	"tupyme/internal/prefs"
	"tupyme/internal/repository"
	"tupyme/internal/state"
)

// Response represents the API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Repositories groups the data access dependencies of the handler
type Repositories struct {
	Users      *repository.UserRepository
	Companies  *repository.CompanyRepository
	Plans      *repository.PlanRepository
	Tickets    *repository.TicketRepository
	Indicators *repository.IndicatorRepository
	Geocoder   *repository.GeocodeRepository
	Orders     *repository.OrderRepository
}

type Handler struct {
	logger   *zap.Logger
	cfg      *config.Config
	repos    Repositories
	sessions *state.Manager
	prefs    *prefs.Store
	orderHub *orderHub
}

func NewHandler(cfg *config.Config, logger *zap.Logger, repos Repositories, sessions *state.Manager, prefsStore *prefs.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		repos:    repos,
		sessions: sessions,
		prefs:    prefsStore,
		orderHub: newOrderHub(logger),
	}
}

// sendErrorResponse sends an error response with the given status code
func (h *Handler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: message,
	})
}

// sendSuccessResponse sends a success response with optional data
func (h *Handler) sendSuccessResponse(w http.ResponseWriter, message string, data ...interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Success: true,
		Message: message,
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	json.NewEncoder(w).Encode(response)
}

// sessionFromRequest resolves the state session named in the route
func (h *Handler) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*state.Session, bool) {
	sessionID := mux.Vars(r)["sessionId"]

	session, ok := h.sessions.Get(sessionID)
	if !ok {
		h.logger.Warn("Unknown session", zap.String("session_id", sessionID))
		h.sendErrorResponse(w, "Sesión no encontrada", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// requestVar reads one route variable
func requestVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// sendUserError translates an upstream failure into the user-facing
// message and mirrors the backend status when one is known.
func (h *Handler) sendUserError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	}

	h.sendErrorResponse(w, repository.UserMessage(err), status)
}

// parseID parses a numeric route variable
func (h *Handler) parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "Identificador inválido: "+raw, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSONBody decodes the request body into dst
func (h *Handler) decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		h.sendErrorResponse(w, "Datos de solicitud inválidos", http.StatusBadRequest)
		return false
	}
	return true
}

// Middleware
func (h *Handler) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Router wires every route behind the CORS middleware
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(h.corsMiddleware)

	// Sessions
	r.HandleFunc("/api/v1/sessions", h.handleCreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}", h.handleDeleteSession).Methods("DELETE", "OPTIONS")

	// Stored session and preferences
	r.HandleFunc("/api/v1/session", h.handleStoredSession).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/preferences", h.handleGetPreferences).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/preferences/onboarding", h.handleSetOnboarding).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/v1/preferences/theme", h.handleSetTheme).Methods("PUT", "OPTIONS")

	// Auth forms
	r.HandleFunc("/api/v1/sessions/{sessionId}/login", h.handleLoginField).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/login", h.handleLoginSnapshot).Methods("GET")
	r.HandleFunc("/api/v1/sessions/{sessionId}/login/submit", h.handleLoginSubmit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/login/reset", h.handleLoginReset).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/register", h.handleRegisterField).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/register", h.handleRegisterSnapshot).Methods("GET")
	r.HandleFunc("/api/v1/sessions/{sessionId}/register/submit", h.handleRegisterSubmit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/register/reset", h.handleRegisterReset).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/logout", h.handleLogout).Methods("POST", "OPTIONS")

	// Users and companies
	r.HandleFunc("/api/v1/users/{email}", h.handleGetUserByEmail).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/companies", h.handleCreateCompany).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/companies/user/{userId}", h.handleGetCompanyByUser).Methods("GET", "OPTIONS")

	// Catalog, plans, indicators, geocoding
	r.HandleFunc("/api/v1/catalog", h.handleCatalog).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/catalog/full-plan", h.handleFullPlan).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/catalog/full-plan/quote", h.handleFullPlanQuote).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/plans", h.handlePlans).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/indicators", h.handleIndicators).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/geocode", h.handleGeocode).Methods("GET", "OPTIONS")

	// Cart
	r.HandleFunc("/api/v1/sessions/{sessionId}/cart", h.handleCartView).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/cart", h.handleCartClear).Methods("DELETE")
	r.HandleFunc("/api/v1/sessions/{sessionId}/cart/items", h.handleCartAdd).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/cart/items/{itemId}", h.handleCartRemove).Methods("DELETE", "OPTIONS")

	// Checkout and orders
	r.HandleFunc("/api/v1/sessions/{sessionId}/checkout", h.handleCheckout).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/orders", h.handleSessionOrders).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/orders/{orderId}", h.handleGetOrder).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/orders/{orderId}/ws", h.handleOrderStatusWS).Methods("GET")

	// Support tickets
	r.HandleFunc("/api/v1/tickets", h.handleListTickets).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/tickets/{ticketId}", h.handleGetTicket).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/tickets/{ticketId}", h.handleUpdateTicket).Methods("PUT")
	r.HandleFunc("/api/v1/tickets/{ticketId}", h.handleDeleteTicket).Methods("DELETE")
	r.HandleFunc("/api/v1/sessions/{sessionId}/ticket", h.handleTicketField).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/ticket", h.handleTicketSnapshot).Methods("GET")
	r.HandleFunc("/api/v1/sessions/{sessionId}/ticket/submit", h.handleTicketSubmit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/sessions/{sessionId}/ticket/reset", h.handleTicketReset).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return r
}

// StartWebServer serves the API until the context is done
func (h *Handler) StartWebServer(ctx context.Context) {
	server := &http.Server{
		Addr:         h.cfg.Port,
		Handler:      h.Router(),
		ReadTimeout:  h.cfg.ReadTimeout,
		WriteTimeout: h.cfg.WriteTimeout,
		IdleTimeout:  h.cfg.IdleTimeout,
	}

	h.logger.Info("Starting web server", zap.String("port", h.cfg.Port))
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Fatal("Failed to start web server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	h.logger.Info("Shutting down web server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		h.logger.Error("Server shutdown error", zap.Error(err))
	}
}
