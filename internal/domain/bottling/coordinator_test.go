package bottling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essentia/internal/core/apperror"
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/domain/catalogs/shop"
	"essentia/internal/domain/pricing"
	"essentia/pkg/numerator"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type env struct {
	w *world

	lots     *fakeLotRepo
	comps    *fakeComponentRepo
	products *fakeProductRepo
	shops    *fakeShopRepo
	allocs   *fakeAllocRepo
	records  *fakeRecordRepo

	coordinator *Coordinator
	runner      *Runner
	reconciler  *Reconciler
}

func newEnv() *env {
	w := newWorld()
	txm := &fakeTxManager{w: w}

	e := &env{
		w:        w,
		lots:     &fakeLotRepo{w: w},
		comps:    &fakeComponentRepo{w: w},
		products: &fakeProductRepo{w: w},
		shops:    &fakeShopRepo{w: w},
		allocs:   &fakeAllocRepo{w: w},
		records:  &fakeRecordRepo{w: w},
	}

	table := pricing.NewTable(
		[]types.Volume{30, 50, 100},
		types.MustMoney("500"),
		types.MustMoney("700"),
	)
	pricingResolver := pricing.NewResolver(table, "selective")

	e.coordinator = NewCoordinator(CoordinatorDeps{
		Lots:        e.lots,
		Components:  e.comps,
		Products:    e.products,
		Resolver:    product.NewResolver(e.products, 16),
		Shops:       e.shops,
		Allocations: e.allocs,
		Records:     e.records,
		Pricing:     pricingResolver,
		Numbers:     numerator.New(&seqQuerier{}),
		TxManager:   txm,
		Now:         func() time.Time { return testNow },
	})
	e.runner = NewRunner(e.coordinator, e.lots, e.shops, pricingResolver, 100)
	e.reconciler = NewReconciler(e.lots, e.comps, e.products, e.allocs, txm)

	return e
}

func (e *env) addLot(name string, volumeML types.Volume, costPerML, category string) *lot.BulkLot {
	l := lot.NewBulkLot("", name, volumeML, types.MustMoney(costPerML))
	l.Category = category
	e.w.lots[l.ID] = *l
	return l
}

func (e *env) addComponent(sizeML types.Volume, count int, unitCost string) *bottlesize.ComponentStock {
	c := bottlesize.NewComponentStock("", sizeML.String(), sizeML, count, types.MustMoney(unitCost))
	e.w.comps[c.ID] = *c
	return c
}

func (e *env) addShop(name string) *shop.Shop {
	s := shop.NewShop("", name)
	e.w.shops[s.ID] = *s
	return s
}

func (e *env) lot(l *lot.BulkLot) lot.BulkLot                      { return e.w.lots[l.ID] }
func (e *env) comp(c *bottlesize.ComponentStock) bottlesize.ComponentStock { return e.w.comps[c.ID] }

func moneyEqual(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, got.Equal(types.MustMoney(want)), "want %s, got %s", want, got)
}

func TestConvert_HappyPath(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	c := e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	result, err := e.coordinator.Convert(ctx, ConvertRequest{
		LotID:  l.ID,
		ShopID: s.ID,
		SizeML: 50,
		Units:  100,
	})
	require.NoError(t, err)

	// Stock movements
	assert.Equal(t, types.Volume(5000), e.lot(l).RemainingVolumeML)
	assert.Equal(t, 100, e.comp(c).AvailableCount)

	// Product
	assert.Equal(t, "rosegarden-50ml", result.ProductSKU)
	p := e.w.products[result.ProductID]
	assert.Equal(t, "Rose Garden 50ml", p.Name)
	assert.Equal(t, 100, p.StockCount)
	require.NotNil(t, p.LotID)
	assert.Equal(t, l.ID, *p.LotID)
	moneyEqual(t, "25000", p.SellingPrice)
	moneyEqual(t, "3.5", p.UnitCost)

	// Allocation
	alloc, err := e.allocs.Get(ctx, s.ID, result.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 100, alloc.Quantity)

	// Record
	rec := result.Record
	assert.Equal(t, "BT-2026-00001", rec.Number)
	assert.Equal(t, types.Volume(5000), rec.VolumeUsedML)
	moneyEqual(t, "150", rec.VolumeCost)
	moneyEqual(t, "200", rec.ComponentCost)
	moneyEqual(t, "350", rec.TotalCost)
	assert.Equal(t, "system", rec.PerformedBy)
	assert.Equal(t, testNow, rec.PerformedAt)
	require.Len(t, e.w.records, 1)
}

func TestConvert_ReusesProductAcrossRuns(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	first, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 40})
	require.NoError(t, err)
	second, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 60})
	require.NoError(t, err)

	// Same SKU converges on one product row with summed stock.
	assert.Equal(t, first.ProductID, second.ProductID)
	require.Len(t, e.w.products, 1)
	assert.Equal(t, 100, e.w.products[first.ProductID].StockCount)

	alloc, err := e.allocs.Get(ctx, s.ID, first.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 100, alloc.Quantity)

	assert.Equal(t, "BT-2026-00001", first.Record.Number)
	assert.Equal(t, "BT-2026-00002", second.Record.Number)
}

func TestConvert_VersionsTrackStoredRows(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	c := e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	first, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 10})
	require.NoError(t, err)

	// The store bumped each written row: lot and component once, the
	// product on its stock write after creation.
	assert.Equal(t, 2, e.lot(l).Version)
	assert.Equal(t, 2, e.comp(c).Version)
	assert.Equal(t, 2, e.w.products[first.ProductID].Version)

	// The reuse path writes the product twice in one transaction
	// (cost refresh, then stock); both writes must land.
	second, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 10})
	require.NoError(t, err)
	assert.Equal(t, first.ProductID, second.ProductID)

	assert.Equal(t, 3, e.lot(l).Version)
	assert.Equal(t, 3, e.comp(c).Version)
	assert.Equal(t, 4, e.w.products[first.ProductID].Version)
	assert.Equal(t, 20, e.w.products[first.ProductID].StockCount)
}

func TestConvert_SelectivePricing(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Oud Royale", 5000, "0.10", "Selective Oriental")
	e.addComponent(100, 50, "3.00")
	s := e.addShop("Main Street")

	result, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 100, Units: 10})
	require.NoError(t, err)

	p := e.w.products[result.ProductID]
	moneyEqual(t, "70000", p.SellingPrice)
}

func TestConvert_InsufficientVolume(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 1000, "0.03", "floral")
	c := e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	_, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 100})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientVolume, appErr.Code)

	// Nothing moved.
	assert.Equal(t, types.Volume(1000), e.lot(l).RemainingVolumeML)
	assert.Equal(t, 200, e.comp(c).AvailableCount)
	assert.Empty(t, e.w.products)
	assert.Empty(t, e.w.records)
}

func TestConvert_InsufficientComponents(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	c := e.addComponent(50, 10, "2.00")
	s := e.addShop("Main Street")

	_, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 100})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	assert.Equal(t, types.Volume(10000), e.lot(l).RemainingVolumeML)
	assert.Equal(t, 10, e.comp(c).AvailableCount)
}

func TestConvert_UnconfiguredSize(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(75, 200, "2.00")
	s := e.addShop("Main Street")

	_, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 75, Units: 10})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidConfiguration, appErr.Code)
}

func TestConvert_InactiveLot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	stored := e.w.lots[l.ID]
	stored.Active = false
	e.w.lots[l.ID] = stored

	e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	_, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 10})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestConvert_UnknownLot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	_, err := e.coordinator.Convert(ctx, ConvertRequest{
		LotID:  lot.NewBulkLot("", "ghost", 0, types.ZeroMoney()).ID,
		ShopID: s.ID,
		SizeML: 50,
		Units:  10,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConvert_RecordFailureRollsBackEverything(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	c := e.addComponent(50, 200, "2.00")
	s := e.addShop("Main Street")

	e.w.recordCreateErr = errors.New("disk full")

	_, err := e.coordinator.Convert(ctx, ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 100})
	require.Error(t, err)

	// The whole transaction rolled back: no debits, no product, no allocation.
	assert.Equal(t, types.Volume(10000), e.lot(l).RemainingVolumeML)
	assert.Equal(t, 200, e.comp(c).AvailableCount)
	assert.Empty(t, e.w.products)
	assert.Empty(t, e.w.allocs)
	assert.Empty(t, e.w.records)
}

func TestConvert_RequestValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	s := e.addShop("Main Street")

	tests := []struct {
		name string
		req  ConvertRequest
	}{
		{"zero units", ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: 0}},
		{"negative units", ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 50, Units: -5}},
		{"zero size", ConvertRequest{LotID: l.ID, ShopID: s.ID, SizeML: 0, Units: 1}},
		{"missing lot", ConvertRequest{ShopID: s.ID, SizeML: 50, Units: 1}},
		{"missing shop", ConvertRequest{LotID: l.ID, SizeML: 50, Units: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.coordinator.Convert(ctx, tt.req)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}
