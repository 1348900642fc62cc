package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tupyme/internal/domain"
	"tupyme/internal/state"
)

// handleCatalog returns the storefront catalog, optionally filtered by
// category (?categoria=virtual-office|accounting|formalization).
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")

	catalog := domain.DefaultCatalog()
	if category != "" {
		filtered := make([]domain.CatalogService, 0, len(catalog))
		for _, svc := range catalog {
			if string(svc.Category) == category {
				filtered = append(filtered, svc)
			}
		}
		catalog = filtered
	}

	h.sendSuccessResponse(w, "Catálogo", catalog)
}

// handleFullPlan returns the bundle composition: the fixed components
// plus the selectable virtual office variants.
func (h *Handler) handleFullPlan(w http.ResponseWriter, r *http.Request) {
	h.sendSuccessResponse(w, "Plan Full", map[string]interface{}{
		"components":    domain.FullPlanComponents(),
		"variants":      domain.FullPlanVariants(),
		"discount_rate": h.cfg.BundleDiscountRate,
	})
}

// handleFullPlanQuote prices the bundle for one variant selection. The
// total is computed fresh from the selected variant; switching variants
// never carries anything over from a previous quote.
func (h *Handler) handleFullPlanQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Variant string `json:"variant"`
	}
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	variant, ok := findVariant(req.Variant)
	if !ok {
		h.sendErrorResponse(w, "Variante desconocida: "+req.Variant, http.StatusBadRequest)
		return
	}

	components := domain.FullPlanComponents()
	total := state.BundleTotal(components, variant, h.cfg.BundleDiscountRate)

	h.logger.Info("Bundle quoted",
		zap.String("variant", variant.Name),
		zap.Int("total", total))

	h.sendSuccessResponse(w, "Cotización", map[string]interface{}{
		"components":    components,
		"variant":       variant,
		"discount_rate": h.cfg.BundleDiscountRate,
		"total":         total,
	})
}

func findVariant(name string) (domain.CatalogService, bool) {
	for _, variant := range domain.FullPlanVariants() {
		if strings.EqualFold(variant.Name, name) {
			return variant, true
		}
	}
	return domain.CatalogService{}, false
}

// handlePlans returns the active backend plans
func (h *Handler) handlePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repos.Plans.GetActivePlans(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch plans", zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Planes", plans)
}

// handleIndicators returns the daily economic indicators
func (h *Handler) handleIndicators(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.repos.Indicators.GetDaily(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch indicators", zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Indicadores", indicators)
}

// handleGeocode searches addresses (?q=...)
func (h *Handler) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.sendErrorResponse(w, "El parámetro q es obligatorio", http.StatusBadRequest)
		return
	}

	results, err := h.repos.Geocoder.SearchAddress(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to search address", zap.String("query", query), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Direcciones", results)
}

// handleCreateCompany proxies company creation
func (h *Handler) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if !h.decodeJSONBody(w, r, &req) {
		return
	}

	company, err := h.repos.Companies.CreateCompany(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create company", zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Empresa creada", company)
}

// handleGetCompanyByUser returns the company of one user
func (h *Handler) handleGetCompanyByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseID(w, requestVar(r, "userId"))
	if !ok {
		return
	}

	company, err := h.repos.Companies.GetCompanyByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch company", zap.Int64("user_id", userID), zap.Error(err))
		h.sendUserError(w, err)
		return
	}

	h.sendSuccessResponse(w, "Empresa", company)
}
