package domain

// PriceVariable marks a catalog entry whose final price is computed
// elsewhere (per-person quantity or bundle composition). It must be
// resolved to a concrete amount before the entry can enter a cart.
const PriceVariable = -1

// ServiceCategory is the closed set of storefront categories
type ServiceCategory string

const (
	CategoryVirtualOffice ServiceCategory = "virtual-office"
	CategoryAccounting    ServiceCategory = "accounting"
	CategoryFormalization ServiceCategory = "formalization"
)

// CatalogService represents one purchasable offering. Entries are
// immutable; prices are Chilean pesos (no decimal subdivision).
type CatalogService struct {
	Category    ServiceCategory `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       int             `json:"price"` // PriceVariable when computed
	PerPerson   bool            `json:"per_person"`
}

// Plan represents a purchasable plan fetched from the backend
type Plan struct {
	ID             int64  `json:"id"`
	Name           string `json:"nombre"`
	Description    string `json:"descripcion"`
	DurationMonths int    `json:"duracionMeses"`
	Price          int    `json:"precio"`
	Active         bool   `json:"activo"`
}

// DefaultCatalog returns the static storefront catalog
func DefaultCatalog() []CatalogService {
	return []CatalogService{
		{
			Category:    CategoryVirtualOffice,
			Name:        "Oficina Virtual Mensual",
			Description: "Dirección tributaria y recepción de correspondencia por un mes",
			Price:       15000,
		},
		{
			Category:    CategoryVirtualOffice,
			Name:        "Oficina Virtual Semestral",
			Description: "Dirección tributaria y recepción de correspondencia por seis meses",
			Price:       75000,
		},
		{
			Category:    CategoryVirtualOffice,
			Name:        "Oficina Virtual Anual",
			Description: "Dirección tributaria y recepción de correspondencia por un año",
			Price:       120000,
		},
		{
			Category:    CategoryAccounting,
			Name:        "Contabilidad Mensual",
			Description: "Declaración F29 y libros contables al día",
			Price:       45000,
		},
		{
			Category:    CategoryAccounting,
			Name:        "Remuneraciones",
			Description: "Liquidaciones de sueldo y cotizaciones, por trabajador",
			Price:       8000,
			PerPerson:   true,
		},
		{
			Category:    CategoryAccounting,
			Name:        "Declaración Renta Anual",
			Description: "Declaración F22 de tu empresa",
			Price:       60000,
		},
		{
			Category:    CategoryFormalization,
			Name:        "Constitución de Empresa",
			Description: "Constitución en un día, estatutos y firma electrónica",
			Price:       50000,
		},
		{
			Category:    CategoryFormalization,
			Name:        "Inicio de Actividades",
			Description: "Trámite de inicio de actividades ante el SII",
			Price:       25000,
		},
		{
			Category:    CategoryFormalization,
			Name:        "Plan Full",
			Description: "Constitución, inicio de actividades y oficina virtual a elección",
			Price:       PriceVariable,
		},
	}
}

// FullPlanComponents returns the fixed components included in Plan Full
func FullPlanComponents() []CatalogService {
	var components []CatalogService
	for _, svc := range DefaultCatalog() {
		if svc.Category == CategoryFormalization && svc.Price != PriceVariable {
			components = append(components, svc)
		}
	}
	return components
}

// FullPlanVariants returns the virtual office variants selectable in Plan Full
func FullPlanVariants() []CatalogService {
	var variants []CatalogService
	for _, svc := range DefaultCatalog() {
		if svc.Category == CategoryVirtualOffice {
			variants = append(variants, svc)
		}
	}
	return variants
}
