// Package bottling implements the bulk-to-bottle conversion engine:
// turning bulk lot volume plus bottle components into sellable retail
// products allocated to shops, and returning them back on reconciliation.
package bottling

import (
	"context"
	"time"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
)

// ConversionRecord is the immutable audit row written for every
// successful conversion. Records are append-only: nothing in the system
// updates or deletes them.
type ConversionRecord struct {
	ID id.ID `db:"id" json:"id"`

	// Number is the human-readable sequential number ("BT-2026-00042")
	Number string `db:"number" json:"number"`

	LotID     id.ID  `db:"lot_id" json:"lotId"`
	LotName   string `db:"lot_name" json:"lotName"`
	ProductID id.ID  `db:"product_id" json:"productId"`
	ShopID    id.ID  `db:"shop_id" json:"shopId"`

	SizeML types.Volume `db:"size_ml" json:"sizeMl"`
	Units  int          `db:"units" json:"units"`

	// VolumeUsedML is the bulk volume drawn from the lot
	VolumeUsedML types.Volume `db:"volume_used_ml" json:"volumeUsedMl"`

	// Cost breakdown: volume cost + component cost = total cost
	VolumeCost    types.Money `db:"volume_cost" json:"volumeCost"`
	ComponentCost types.Money `db:"component_cost" json:"componentCost"`
	TotalCost     types.Money `db:"total_cost" json:"totalCost"`

	PerformedBy string    `db:"performed_by" json:"performedBy"`
	PerformedAt time.Time `db:"performed_at" json:"performedAt"`
}

// RecordFilter narrows conversion history listings.
type RecordFilter struct {
	LotID  *id.ID
	ShopID *id.ID
	SizeML *types.Volume
	From   *time.Time
	To     *time.Time

	Limit  int
	Offset int
}

// RecordRepository persists conversion records.
type RecordRepository interface {
	// Create appends a record. Records are never updated or deleted.
	Create(ctx context.Context, rec *ConversionRecord) error

	// List retrieves records matching the filter, newest first.
	List(ctx context.Context, f RecordFilter) ([]*ConversionRecord, int64, error)
}

// ConvertRequest describes a single bulk-to-bottle conversion.
type ConvertRequest struct {
	LotID  id.ID        `json:"lotId"`
	ShopID id.ID        `json:"shopId"`
	SizeML types.Volume `json:"sizeMl"`
	Units  int          `json:"units"`
}

// Validate implements entity.Validatable interface.
func (r *ConvertRequest) Validate(ctx context.Context) error {
	if id.IsNil(r.LotID) {
		return apperror.NewValidation("lot id is required").
			WithDetail("field", "lotId")
	}
	if id.IsNil(r.ShopID) {
		return apperror.NewValidation("shop id is required").
			WithDetail("field", "shopId")
	}
	if !r.SizeML.IsPositive() {
		return apperror.NewValidation("size must be positive").
			WithDetail("field", "sizeMl")
	}
	if r.Units <= 0 {
		return apperror.NewValidation("units must be positive").
			WithDetail("field", "units")
	}
	return nil
}

// ConvertResult is returned from a successful conversion.
type ConvertResult struct {
	Record *ConversionRecord `json:"record"`

	ProductID  id.ID  `json:"productId"`
	ProductSKU string `json:"productSku"`

	// Post-conversion balances
	LotRemainingML      types.Volume `json:"lotRemainingMl"`
	ComponentsRemaining int          `json:"componentsRemaining"`
}

// Item status values for batch and reconciliation reports.
const (
	StatusConverted = "converted"
	StatusReturned  = "returned"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// BatchItem is the outcome of one lot/size/shop combination in a batch.
type BatchItem struct {
	LotID   id.ID        `json:"lotId"`
	LotName string       `json:"lotName"`
	SizeML  types.Volume `json:"sizeMl"`
	ShopID  id.ID        `json:"shopId"`
	Units   int          `json:"units"`

	Status string `json:"status"`
	Error  string `json:"error,omitempty"`

	RecordNumber string `json:"recordNumber,omitempty"`
}

// BatchReport summarizes a batch conversion run.
// A run with failures still returns the report: committed items stand.
type BatchReport struct {
	Total     int         `json:"total"`
	Converted int         `json:"converted"`
	Failed    int         `json:"failed"`
	Skipped   int         `json:"skipped"`
	Items     []BatchItem `json:"items"`
}

func (r *BatchReport) add(item BatchItem) {
	r.Total++
	switch item.Status {
	case StatusConverted:
		r.Converted++
	case StatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
	r.Items = append(r.Items, item)
}

// ReconcileItem is the outcome of returning one shop allocation.
type ReconcileItem struct {
	ShopID     id.ID  `json:"shopId"`
	ProductID  id.ID  `json:"productId"`
	ProductSKU string `json:"productSku"`
	Units      int    `json:"units"`

	LotID            *id.ID       `json:"lotId,omitempty"`
	VolumeReturnedML types.Volume `json:"volumeReturnedMl"`

	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReconcileReport summarizes a reconciliation run.
type ReconcileReport struct {
	Processed        int             `json:"processed"`
	Returned         int             `json:"returned"`
	Skipped          int             `json:"skipped"`
	UnitsReturned    int             `json:"unitsReturned"`
	VolumeReturnedML types.Volume    `json:"volumeReturnedMl"`
	Items            []ReconcileItem `json:"items"`
}
