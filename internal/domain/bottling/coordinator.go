package bottling

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"essentia/internal/core/apperror"
	appctx "essentia/internal/core/context"
	"essentia/internal/core/id"
	"essentia/internal/core/tx"
	"essentia/internal/core/types"
	"essentia/internal/domain/allocation"
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/domain/catalogs/shop"
	"essentia/internal/domain/pricing"
	"essentia/pkg/logger"
	"essentia/pkg/numerator"
)

// recordPrefix is the numbering prefix for conversion records.
const recordPrefix = "BT"

// Coordinator runs single bulk-to-bottle conversions.
//
// Convert is all-or-nothing: every stock movement of one conversion
// happens in one database transaction. Rows are locked in a fixed order
// (lot, component, product, allocation) so concurrent conversions cannot
// deadlock each other.
type Coordinator struct {
	lots        lot.Repository
	components  bottlesize.Repository
	products    product.Repository
	resolver    *product.Resolver
	shops       shop.Repository
	allocations allocation.Repository
	records     RecordRepository
	pricing     *pricing.Resolver
	numbers     *numerator.Service
	txManager   tx.Manager

	now func() time.Time
}

// CoordinatorDeps bundles the coordinator's dependencies.
type CoordinatorDeps struct {
	Lots        lot.Repository
	Components  bottlesize.Repository
	Products    product.Repository
	Resolver    *product.Resolver
	Shops       shop.Repository
	Allocations allocation.Repository
	Records     RecordRepository
	Pricing     *pricing.Resolver
	Numbers     *numerator.Service
	TxManager   tx.Manager

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewCoordinator creates a conversion coordinator.
func NewCoordinator(deps CoordinatorDeps) *Coordinator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		lots:        deps.Lots,
		components:  deps.Components,
		products:    deps.Products,
		resolver:    deps.Resolver,
		shops:       deps.Shops,
		allocations: deps.Allocations,
		records:     deps.Records,
		pricing:     deps.Pricing,
		numbers:     deps.Numbers,
		txManager:   deps.TxManager,
		now:         now,
	}
}

// Convert performs one bulk-to-bottle conversion.
//
// Inside a single transaction it debits the lot's volume and the
// component stock, resolves or creates the retail product, increments
// its stock, upserts the shop allocation and appends the conversion
// record. Any failure rolls the whole transaction back.
func (c *Coordinator) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}
	if !c.pricing.Table().HasSize(req.SizeML) {
		return nil, apperror.NewInvalidConfiguration("bottle size is not configured").
			WithDetail("size_ml", req.SizeML.ML())
	}

	target, err := c.shops.GetByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	if !target.Active || target.DeletionMark {
		return nil, apperror.NewValidation("shop is not active").
			WithDetail("shop_id", req.ShopID.String())
	}

	var result *ConvertResult
	err = c.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		result, txErr = c.convertLocked(ctx, req)
		return txErr
	})
	if err != nil {
		if !apperror.IsDomainError(err) {
			logger.Error(ctx, "conversion failed",
				"lot_id", req.LotID.String(),
				"size_ml", req.SizeML.ML(),
				"units", req.Units,
				"error", err)
		}
		return nil, err
	}

	logger.Info(ctx, "conversion completed",
		"record", result.Record.Number,
		"lot", result.Record.LotName,
		"size_ml", req.SizeML.ML(),
		"units", req.Units,
		"total_cost", result.Record.TotalCost.String())

	return result, nil
}

// convertLocked performs the stock movements. Must run inside a
// transaction; it takes row locks in the fixed lock order.
func (c *Coordinator) convertLocked(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	l, err := c.lots.GetForUpdate(ctx, req.LotID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bulk lot", req.LotID.String())
		}
		return nil, err
	}
	if !l.Active || l.DeletionMark {
		return nil, apperror.NewValidation("lot is not active").
			WithDetail("lot_id", req.LotID.String())
	}

	comp, err := c.components.GetBySizeForUpdate(ctx, req.SizeML)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bottle size", req.SizeML.String())
		}
		return nil, err
	}

	sellingPrice, err := c.pricing.Lookup(l.Category, req.SizeML)
	if err != nil {
		return nil, err
	}

	volume := types.VolumeForUnits(req.Units, req.SizeML)
	if err := l.Debit(volume); err != nil {
		return nil, err
	}
	if err := comp.Debit(req.Units); err != nil {
		return nil, err
	}

	volumeCost := l.CostPerML.Mul(volume.Decimal())
	componentCost := comp.UnitCost.Mul(decimal.NewFromInt(int64(req.Units)))
	unitCost := l.CostPerML.Mul(req.SizeML.Decimal()).Add(comp.UnitCost)

	p, err := c.resolver.ResolveOrCreate(ctx, l.ID, l.Name, req.SizeML, unitCost, sellingPrice)
	if err != nil {
		return nil, err
	}
	p.AddStock(req.Units)
	if err := c.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product stock: %w", err)
	}

	if err := c.lots.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update lot: %w", err)
	}
	if err := c.components.Update(ctx, comp); err != nil {
		return nil, fmt.Errorf("update component stock: %w", err)
	}

	if _, err := c.allocations.AddQuantity(ctx, allocation.NewShopAllocation(req.ShopID, p.ID, req.Units, 0, 0)); err != nil {
		return nil, fmt.Errorf("upsert allocation: %w", err)
	}

	performedAt := c.now().UTC()
	number, err := c.numbers.GetNextNumber(ctx, numerator.DefaultConfig(recordPrefix), nil, performedAt)
	if err != nil {
		return nil, fmt.Errorf("generate record number: %w", err)
	}

	rec := &ConversionRecord{
		ID:            id.New(),
		Number:        number,
		LotID:         l.ID,
		LotName:       l.Name,
		ProductID:     p.ID,
		ShopID:        req.ShopID,
		SizeML:        req.SizeML,
		Units:         req.Units,
		VolumeUsedML:  volume,
		VolumeCost:    volumeCost,
		ComponentCost: componentCost,
		TotalCost:     volumeCost.Add(componentCost),
		PerformedBy:   appctx.GetActorID(ctx),
		PerformedAt:   performedAt,
	}
	if err := c.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("append conversion record: %w", err)
	}

	return &ConvertResult{
		Record:              rec,
		ProductID:           p.ID,
		ProductSKU:          p.SKU,
		LotRemainingML:      l.RemainingVolumeML,
		ComponentsRemaining: comp.AvailableCount,
	}, nil
}

// ListRecords retrieves conversion history.
func (c *Coordinator) ListRecords(ctx context.Context, f RecordFilter) ([]*ConversionRecord, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return c.records.List(ctx, f)
}
