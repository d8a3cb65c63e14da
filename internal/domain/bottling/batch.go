package bottling

import (
	"context"
	"sort"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/domain/catalogs/shop"
	"essentia/internal/domain/pricing"
	"essentia/pkg/logger"
)

// Runner drives batch conversions on top of the coordinator.
//
// Every lot/size/shop combination runs in its own transaction, so one
// failing combination never rolls back the others: committed items
// stand, failures are reported per item.
type Runner struct {
	coordinator *Coordinator
	lots        lot.Repository
	shops       shop.Repository
	pricing     *pricing.Resolver

	// minBatchVolumeML is the eligibility floor for ConvertAllBulk
	minBatchVolumeML types.Volume
}

// NewRunner creates a batch conversion runner.
func NewRunner(coordinator *Coordinator, lots lot.Repository, shops shop.Repository, pricingResolver *pricing.Resolver, minBatchVolumeML types.Volume) *Runner {
	return &Runner{
		coordinator:      coordinator,
		lots:             lots,
		shops:            shops,
		pricing:          pricingResolver,
		minBatchVolumeML: minBatchVolumeML,
	}
}

// allShops targets every active shop in a batch request.
const allShops = "all"

// AllSizesRequest converts one lot into every configured bottle size.
type AllSizesRequest struct {
	LotID id.ID `json:"lotId"`

	// ShopID targets one shop by id, or every active shop when "all".
	ShopID       string `json:"shopId"`
	UnitsPerSize int    `json:"unitsPerSize"`
}

// Validate implements entity.Validatable interface.
func (r *AllSizesRequest) Validate(ctx context.Context) error {
	if id.IsNil(r.LotID) {
		return apperror.NewValidation("lot id is required").
			WithDetail("field", "lotId")
	}
	if r.ShopID == "" {
		return apperror.NewValidation("shop id is required").
			WithDetail("field", "shopId")
	}
	if r.UnitsPerSize <= 0 {
		return apperror.NewValidation("units per size must be positive").
			WithDetail("field", "unitsPerSize")
	}
	return nil
}

// AllBulkRequest batch-converts every eligible lot into every configured
// size.
type AllBulkRequest struct {
	// ShopID targets one shop by id, or every active shop when "all"
	// or empty.
	ShopID string `json:"shopId"`

	// UnitsPerShop is the unit count per lot/size/shop combination.
	// Defaults to 1.
	UnitsPerShop int `json:"unitsPerShop"`
}

// sortedSizes returns the configured sizes in ascending order, so batch
// runs walk combinations in a stable order.
func (r *Runner) sortedSizes() []types.Volume {
	sizes := r.pricing.Table().Sizes()
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

// resolveShops expands a batch request's shop target: one shop by id,
// or every active shop for "all".
func (r *Runner) resolveShops(ctx context.Context, target string) ([]*shop.Shop, error) {
	if target == "" || target == allShops {
		shops, err := r.shops.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		if len(shops) == 0 {
			return nil, apperror.NewValidation("no active shops to allocate to")
		}
		return shops, nil
	}

	shopID, err := id.Parse(target)
	if err != nil {
		return nil, apperror.NewValidation("invalid shop id").
			WithDetail("shopId", target)
	}
	s, err := r.shops.GetByID(ctx, shopID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("shop", target)
		}
		return nil, err
	}
	if !s.Active || s.DeletionMark {
		return nil, apperror.NewValidation("shop is not active").
			WithDetail("shop_id", target)
	}
	return []*shop.Shop{s}, nil
}

// ConvertAllSizes converts one lot into every configured bottle size
// for the targeted shops.
func (r *Runner) ConvertAllSizes(ctx context.Context, req AllSizesRequest) (*BatchReport, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	l, err := r.lots.GetByID(ctx, req.LotID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bulk lot", req.LotID.String())
		}
		return nil, err
	}

	shops, err := r.resolveShops(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{}
	for _, size := range r.sortedSizes() {
		for _, s := range shops {
			item := BatchItem{
				LotID:   l.ID,
				LotName: l.Name,
				SizeML:  size,
				ShopID:  s.ID,
				Units:   req.UnitsPerSize,
			}

			result, err := r.coordinator.Convert(ctx, ConvertRequest{
				LotID:  req.LotID,
				ShopID: s.ID,
				SizeML: size,
				Units:  req.UnitsPerSize,
			})
			r.finishItem(&item, result, err)
			report.add(item)
		}
	}

	logger.Info(ctx, "all-sizes batch finished",
		"lot", l.Name,
		"shops", len(shops),
		"converted", report.Converted,
		"skipped", report.Skipped,
		"failed", report.Failed)

	return report, nil
}

// ConvertAllBulk batch-converts every eligible lot into every configured
// size for the targeted shops.
func (r *Runner) ConvertAllBulk(ctx context.Context, req AllBulkRequest) (*BatchReport, error) {
	units := req.UnitsPerShop
	if units <= 0 {
		units = 1
	}

	lots, err := r.lots.ListEligible(ctx, r.minBatchVolumeML)
	if err != nil {
		return nil, err
	}
	shops, err := r.resolveShops(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{}
	sizes := r.sortedSizes()
	for _, l := range lots {
		for _, size := range sizes {
			for _, s := range shops {
				item := BatchItem{
					LotID:   l.ID,
					LotName: l.Name,
					SizeML:  size,
					ShopID:  s.ID,
					Units:   units,
				}

				result, err := r.coordinator.Convert(ctx, ConvertRequest{
					LotID:  l.ID,
					ShopID: s.ID,
					SizeML: size,
					Units:  units,
				})
				r.finishItem(&item, result, err)
				report.add(item)
			}
		}
	}

	logger.Info(ctx, "all-bulk batch finished",
		"lots", len(lots),
		"shops", len(shops),
		"converted", report.Converted,
		"skipped", report.Skipped,
		"failed", report.Failed)

	return report, nil
}

// finishItem classifies one combination outcome. Stock shortfalls are
// expected in batch runs and count as skipped, not failed.
func (r *Runner) finishItem(item *BatchItem, result *ConvertResult, err error) {
	switch {
	case err == nil:
		item.Status = StatusConverted
		item.RecordNumber = result.Record.Number
	case isShortage(err):
		item.Status = StatusSkipped
		item.Error = err.Error()
	default:
		item.Status = StatusFailed
		item.Error = err.Error()
	}
}

func isShortage(err error) bool {
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		return false
	}
	return appErr.Code == apperror.CodeInsufficientStock ||
		appErr.Code == apperror.CodeInsufficientVolume
}
