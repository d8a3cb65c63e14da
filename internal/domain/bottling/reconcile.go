package bottling

import (
	"context"
	"fmt"

	"essentia/internal/core/apperror"
	"essentia/internal/core/tx"
	"essentia/internal/core/types"
	"essentia/internal/domain/allocation"
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/domain/catalogs/product"
	"essentia/pkg/logger"
)

// Reconciler returns bottled shop inventory back to bulk stock.
//
// Each allocation is processed in its own transaction: an item that
// cannot be resolved is logged and reported as skipped while the rest of
// the run proceeds. Allocation rows are zeroed, never deleted.
type Reconciler struct {
	lots        lot.Repository
	components  bottlesize.Repository
	products    product.Repository
	allocations allocation.Repository
	txManager   tx.Manager
}

// NewReconciler creates a reconciliation engine.
func NewReconciler(lots lot.Repository, components bottlesize.Repository, products product.Repository, allocations allocation.Repository, txManager tx.Manager) *Reconciler {
	return &Reconciler{
		lots:        lots,
		components:  components,
		products:    products,
		allocations: allocations,
		txManager:   txManager,
	}
}

// ReturnAllShopInventory reverses every non-zero shop allocation:
// bulk volume goes back to the originating lot, component sets back to
// stock, the allocation is zeroed and the product stock decremented.
func (r *Reconciler) ReturnAllShopInventory(ctx context.Context) (*ReconcileReport, error) {
	allocs, err := r.allocations.ListNonZero(ctx)
	if err != nil {
		return nil, err
	}

	// Active lots are the candidate set for name-based fallback matching
	// of products without a stored lot link.
	activeLots, err := r.lots.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{}
	for _, a := range allocs {
		item := r.returnOne(ctx, a, activeLots)

		report.Processed++
		if item.Status == StatusReturned {
			report.Returned++
			report.UnitsReturned += item.Units
			report.VolumeReturnedML += item.VolumeReturnedML
		} else {
			report.Skipped++
			logger.Warn(ctx, "allocation skipped during reconciliation",
				"shop_id", item.ShopID.String(),
				"product_id", item.ProductID.String(),
				"error", item.Error)
		}
		report.Items = append(report.Items, item)
	}

	logger.Info(ctx, "reconciliation finished",
		"processed", report.Processed,
		"returned", report.Returned,
		"skipped", report.Skipped,
		"units", report.UnitsReturned,
		"volume_ml", report.VolumeReturnedML.ML())

	return report, nil
}

// returnOne reverses a single allocation in its own transaction.
func (r *Reconciler) returnOne(ctx context.Context, a *allocation.ShopAllocation, activeLots []*lot.BulkLot) ReconcileItem {
	item := ReconcileItem{
		ShopID:    a.ShopID,
		ProductID: a.ProductID,
	}

	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Peek at the product first to find the originating lot, then
		// take locks in the fixed order: lot, component, product.
		p, err := r.products.GetByID(ctx, a.ProductID)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		item.ProductSKU = p.SKU

		originLot, err := r.resolveLot(ctx, p, activeLots)
		if err != nil {
			return err
		}
		item.LotID = &originLot.ID

		l, err := r.lots.GetForUpdate(ctx, originLot.ID)
		if err != nil {
			return fmt.Errorf("lock lot: %w", err)
		}
		comp, err := r.components.GetBySizeForUpdate(ctx, p.SizeML)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("bottle size", p.SizeML.String())
			}
			return fmt.Errorf("lock component stock: %w", err)
		}
		p, err = r.products.GetForUpdate(ctx, a.ProductID)
		if err != nil {
			return fmt.Errorf("lock product: %w", err)
		}

		// Re-read the allocation under the locks; the listing snapshot
		// may be stale.
		fresh, err := r.allocations.Get(ctx, a.ShopID, a.ProductID)
		if err != nil {
			return fmt.Errorf("load allocation: %w", err)
		}
		if fresh.Quantity == 0 {
			item.Units = 0
			return nil
		}
		units := fresh.Quantity
		volume := types.VolumeForUnits(units, p.SizeML)

		l.Credit(volume)
		if err := r.lots.Update(ctx, l); err != nil {
			return fmt.Errorf("credit lot: %w", err)
		}

		comp.Credit(units)
		if err := r.components.Update(ctx, comp); err != nil {
			return fmt.Errorf("credit component stock: %w", err)
		}

		if err := r.allocations.Zero(ctx, fresh.ID); err != nil {
			return fmt.Errorf("zero allocation: %w", err)
		}

		p.RemoveStock(units)
		if err := r.products.Update(ctx, p); err != nil {
			return fmt.Errorf("decrement product stock: %w", err)
		}

		item.Units = units
		item.VolumeReturnedML = volume
		return nil
	})

	if err != nil {
		item.Status = StatusSkipped
		item.Error = err.Error()
		return item
	}

	item.Status = StatusReturned
	return item
}

// resolveLot finds the lot an allocation's volume should return to.
// The stored lot link wins; products without one fall back to display
// name matching.
func (r *Reconciler) resolveLot(ctx context.Context, p *product.RetailProduct, activeLots []*lot.BulkLot) (*lot.BulkLot, error) {
	if p.LotID != nil {
		l, err := r.lots.GetByID(ctx, *p.LotID)
		if err == nil {
			return l, nil
		}
		if !apperror.IsNotFound(err) {
			return nil, fmt.Errorf("load lot: %w", err)
		}
		// Linked lot is gone; fall through to name matching.
	}

	if matched := MatchLotByDisplayName(p.Name, activeLots); matched != nil {
		return matched, nil
	}
	return nil, apperror.NewNotFound("originating lot", p.SKU).
		WithDetail("product_name", p.Name)
}
