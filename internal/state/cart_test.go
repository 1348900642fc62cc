package state

import (
	"testing"

	"tupyme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_SubtotalMatchesRemainingItems(t *testing.T) {
	cart := NewCart()

	first, err := cart.AddItem(domain.CatalogService{Name: "Oficina Virtual Mensual", Price: 15000})
	require.NoError(t, err)
	second, err := cart.AddItem(domain.CatalogService{Name: "Contabilidad Mensual", Price: 45000})
	require.NoError(t, err)
	_, err = cart.AddItem(domain.CatalogService{Name: "Inicio de Actividades", Price: 25000})
	require.NoError(t, err)

	assert.Equal(t, 85000, cart.Subtotal())

	cart.RemoveItem(second.ID)
	assert.Equal(t, 40000, cart.Subtotal())

	cart.RemoveItem(first.ID)
	assert.Equal(t, 25000, cart.Subtotal())
}

func TestCart_RemoveUnknownIDIsNoOp(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(domain.CatalogService{Name: "Constitución de Empresa", Price: 50000})
	require.NoError(t, err)

	cart.RemoveItem("does-not-exist")
	cart.RemoveItem("does-not-exist") // removal stays idempotent

	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 50000, cart.Subtotal())
}

func TestCart_ClearEmptiesEverything(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(domain.CatalogService{Name: "A", Price: 100})
	require.NoError(t, err)
	_, err = cart.AddItem(domain.CatalogService{Name: "B", Price: 200})
	require.NoError(t, err)

	cart.Clear()

	assert.Zero(t, cart.Len())
	assert.Zero(t, cart.Subtotal())
}

func TestCart_ItemsPreserveInsertionOrder(t *testing.T) {
	cart := NewCart()
	for _, name := range []string{"uno", "dos", "tres"} {
		_, err := cart.AddItem(domain.CatalogService{Name: name, Price: 1000})
		require.NoError(t, err)
	}

	items := cart.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "uno", items[0].Title)
	assert.Equal(t, "dos", items[1].Title)
	assert.Equal(t, "tres", items[2].Title)
}

func TestCart_SameServiceAddedTwiceGetsDistinctLines(t *testing.T) {
	cart := NewCart()
	svc := domain.CatalogService{Name: "Oficina Virtual Mensual", Price: 15000}

	first, err := cart.AddItem(svc)
	require.NoError(t, err)
	second, err := cart.AddItem(svc)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 30000, cart.Subtotal())
}

func TestCart_RejectsUnresolvedPrices(t *testing.T) {
	cart := NewCart()

	_, err := cart.AddItem(domain.CatalogService{Name: "Plan Full", Price: domain.PriceVariable})
	assert.Error(t, err)

	_, err = cart.AddItem(domain.CatalogService{Name: "Remuneraciones", Price: 8000, PerPerson: true})
	assert.Error(t, err)

	assert.Zero(t, cart.Len())
}

func TestFinalizeQuantity(t *testing.T) {
	svc := domain.CatalogService{Name: "Remuneraciones", Price: 8000, PerPerson: true}

	resolved := FinalizeQuantity(svc, 4)
	assert.Equal(t, 32000, resolved.Price)
	assert.False(t, resolved.PerPerson)

	// quantity never drops below one person
	clamped := FinalizeQuantity(svc, 0)
	assert.Equal(t, 8000, clamped.Price)
	clamped = FinalizeQuantity(svc, -3)
	assert.Equal(t, 8000, clamped.Price)
}

func TestBundleTotal_FloorsDiscountedSum(t *testing.T) {
	components := []domain.CatalogService{
		{Name: "Constitución de Empresa", Price: 50000},
		{Name: "Inicio de Actividades", Price: 25000},
	}
	variant := domain.CatalogService{Name: "Oficina Virtual Mensual", Price: 15000}

	// (50000 + 25000 + 15000) * 0.85 = 76500
	assert.Equal(t, 76500, BundleTotal(components, variant, 0.15))

	// a sum whose discount doesn't land on a whole peso is truncated
	odd := []domain.CatalogService{{Price: 33333}}
	variantOdd := domain.CatalogService{Price: 11111}
	// (33333 + 11111) * 0.85 = 37777.4 -> 37777
	assert.Equal(t, 37777, BundleTotal(odd, variantOdd, 0.15))
}

func TestBundleTotal_VariantChangeLeavesNoResidue(t *testing.T) {
	components := domain.FullPlanComponents()
	variants := domain.FullPlanVariants()
	require.NotEmpty(t, components)
	require.Len(t, variants, 3)

	monthly := BundleTotal(components, variants[0], 0.15)
	annual := BundleTotal(components, variants[2], 0.15)
	monthlyAgain := BundleTotal(components, variants[0], 0.15)

	assert.NotEqual(t, monthly, annual)
	assert.Equal(t, monthly, monthlyAgain)
}
