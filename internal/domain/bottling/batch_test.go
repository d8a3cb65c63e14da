package bottling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essentia/internal/core/apperror"
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/shop"
)

func TestConvertAllSizes(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(30, 100, "1.50")
	e.addComponent(50, 100, "2.00")
	e.addComponent(100, 100, "3.00")
	s := e.addShop("Main Street")

	report, err := e.runner.ConvertAllSizes(ctx, AllSizesRequest{
		LotID:        l.ID,
		ShopID:       s.ID.String(),
		UnitsPerSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Converted)
	assert.Equal(t, 0, report.Failed)

	// Sizes walked in ascending order: 10*(30+50+100) = 1800ml drawn.
	require.Len(t, report.Items, 3)
	assert.Equal(t, types.Volume(30), report.Items[0].SizeML)
	assert.Equal(t, types.Volume(100), report.Items[2].SizeML)
	assert.Equal(t, types.Volume(8200), e.lot(l).RemainingVolumeML)
	assert.Len(t, e.w.products, 3)
	assert.Len(t, e.w.records, 3)
}

func TestConvertAllSizes_PartialShortage(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	// 1200ml covers 10x30ml and 10x50ml but not 10x100ml.
	l := e.addLot("Rose Garden", 1200, "0.03", "floral")
	e.addComponent(30, 100, "1.50")
	e.addComponent(50, 100, "2.00")
	e.addComponent(100, 100, "3.00")
	s := e.addShop("Main Street")

	report, err := e.runner.ConvertAllSizes(ctx, AllSizesRequest{
		LotID:        l.ID,
		ShopID:       s.ID.String(),
		UnitsPerSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Converted)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	// Committed conversions stand; only the 100ml run was skipped.
	assert.Equal(t, types.Volume(400), e.lot(l).RemainingVolumeML)
	assert.Len(t, e.w.records, 2)

	last := report.Items[2]
	assert.Equal(t, StatusSkipped, last.Status)
	assert.NotEmpty(t, last.Error)
}

func TestConvertAllSizes_AllShops(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(30, 100, "1.50")
	e.addComponent(50, 100, "2.00")
	e.addComponent(100, 100, "3.00")
	s1 := e.addShop("Main Street")
	s2 := e.addShop("Harbor Mall")

	report, err := e.runner.ConvertAllSizes(ctx, AllSizesRequest{
		LotID:        l.ID,
		ShopID:       "all",
		UnitsPerSize: 10,
	})
	require.NoError(t, err)

	// 3 sizes fanned out to both active shops.
	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 6, report.Converted)
	assert.Len(t, e.w.products, 3)

	for _, p := range e.w.products {
		for _, s := range []*shop.Shop{s1, s2} {
			alloc, err := e.allocs.Get(ctx, s.ID, p.ID)
			require.NoError(t, err)
			assert.Equal(t, 10, alloc.Quantity)
		}
	}
}

func TestConvertAllSizes_InvalidShopTarget(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	l := e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(50, 100, "2.00")
	e.addShop("Main Street")

	_, err := e.runner.ConvertAllSizes(ctx, AllSizesRequest{
		LotID:        l.ID,
		ShopID:       "not-a-uuid",
		UnitsPerSize: 10,
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestConvertAllBulk(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addLot("Oud Royale", 20000, "0.10", "selective")
	e.addComponent(30, 1000, "1.50")
	e.addComponent(50, 1000, "2.00")
	e.addComponent(100, 1000, "3.00")
	e.addShop("Main Street")
	e.addShop("Harbor Mall")

	report, err := e.runner.ConvertAllBulk(ctx, AllBulkRequest{})
	require.NoError(t, err)

	// 2 lots x 3 sizes x 2 shops, one unit each.
	assert.Equal(t, 12, report.Total)
	assert.Equal(t, 12, report.Converted)
	assert.Len(t, e.w.records, 12)

	// One product per lot/size pair, allocated to both shops.
	assert.Len(t, e.w.products, 6)
	assert.Len(t, e.w.allocs, 12)
}

func TestConvertAllBulk_SingleShopTarget(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(30, 1000, "1.50")
	e.addComponent(50, 1000, "2.00")
	e.addComponent(100, 1000, "3.00")
	s1 := e.addShop("Main Street")
	s2 := e.addShop("Harbor Mall")

	report, err := e.runner.ConvertAllBulk(ctx, AllBulkRequest{ShopID: s1.ID.String()})
	require.NoError(t, err)

	// Only the targeted shop receives allocations.
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Converted)
	for _, item := range report.Items {
		assert.Equal(t, s1.ID, item.ShopID)
	}

	rows, err := e.allocs.ListByShop(ctx, s2.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestConvertAllBulk_SkipsIneligibleLots(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.addLot("Rose Garden", 10000, "0.03", "floral")
	// Below the 100ml eligibility floor.
	e.addLot("Dregs", 40, "0.03", "floral")
	e.addComponent(30, 1000, "1.50")
	e.addComponent(50, 1000, "2.00")
	e.addComponent(100, 1000, "3.00")
	e.addShop("Main Street")

	report, err := e.runner.ConvertAllBulk(ctx, AllBulkRequest{})
	require.NoError(t, err)

	// Only the eligible lot produced combinations.
	assert.Equal(t, 3, report.Total)
	for _, item := range report.Items {
		assert.Equal(t, "Rose Garden", item.LotName)
	}
}

func TestConvertAllBulk_IsolatesShortages(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	// 120ml is eligible but only covers the 30ml and 50ml runs.
	short := e.addLot("Almost Empty", 120, "0.05", "floral")
	full := e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(30, 1000, "1.50")
	e.addComponent(50, 1000, "2.00")
	e.addComponent(100, 1000, "3.00")
	e.addShop("Main Street")

	report, err := e.runner.ConvertAllBulk(ctx, AllBulkRequest{})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 5, report.Converted)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	// The short lot's committed runs stand.
	assert.Equal(t, types.Volume(40), e.lot(short).RemainingVolumeML)
	assert.Equal(t, types.Volume(9820), e.lot(full).RemainingVolumeML)
}

func TestConvertAllBulk_NoActiveShops(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.addLot("Rose Garden", 10000, "0.03", "floral")
	e.addComponent(50, 1000, "2.00")

	_, err := e.runner.ConvertAllBulk(ctx, AllBulkRequest{})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
