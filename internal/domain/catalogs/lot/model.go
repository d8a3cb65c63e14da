// Package lot provides the BulkLot catalog: bulk perfume concentrate
// purchased in volume and drawn down by bottling runs.
package lot

import (
	"context"
	"strings"

	"essentia/internal/core/apperror"
	"essentia/internal/core/entity"
	"essentia/internal/core/types"
)

// BulkLot represents one bulk perfume lot.
// Name doubles as the scent name printed on retail labels.
type BulkLot struct {
	entity.Catalog

	// RemainingVolumeML is the undrawn volume, in whole milliliters
	RemainingVolumeML types.Volume `db:"remaining_volume_ml" json:"remainingVolumeMl"`

	// CostPerML is the purchase cost per milliliter
	CostPerML types.Money `db:"cost_per_ml" json:"costPerMl"`

	// Category is a free-form tag used for price category resolution
	Category string `db:"category" json:"category"`

	// Active lots are eligible for bottling
	Active bool `db:"active" json:"active"`
}

// NewBulkLot creates a new BulkLot with required fields.
func NewBulkLot(code, name string, volumeML types.Volume, costPerML types.Money) *BulkLot {
	return &BulkLot{
		Catalog:           entity.NewCatalog(code, name),
		RemainingVolumeML: volumeML,
		CostPerML:         costPerML,
		Active:            true,
	}
}

// Validate implements entity.Validatable interface.
func (l *BulkLot) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if l.RemainingVolumeML.IsNegative() {
		return apperror.NewValidation("remaining volume cannot be negative").
			WithDetail("field", "remainingVolumeMl")
	}

	if l.CostPerML.IsNegative() {
		return apperror.NewValidation("cost per ml cannot be negative").
			WithDetail("field", "costPerMl")
	}

	return nil
}

// Debit draws the given volume from the lot.
// Returns an insufficient-volume error if the lot cannot cover it.
func (l *BulkLot) Debit(volumeML types.Volume) error {
	if volumeML > l.RemainingVolumeML {
		return apperror.NewInsufficientVolume(l.ID.String(), volumeML.ML(), l.RemainingVolumeML.ML()).
			WithDetail("lot_name", l.Name)
	}
	l.RemainingVolumeML -= volumeML
	return nil
}

// Credit returns volume to the lot (reconciliation path).
func (l *BulkLot) Credit(volumeML types.Volume) {
	l.RemainingVolumeML += volumeML
}

// IsEligible reports whether the lot qualifies for batch bottling.
func (l *BulkLot) IsEligible(minVolumeML types.Volume) bool {
	return l.Active && !l.DeletionMark && l.RemainingVolumeML >= minVolumeML
}

// MatchesCategory reports whether the lot's category tag contains the
// given marker, case-insensitively.
func (l *BulkLot) MatchesCategory(marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(l.Category), strings.ToLower(marker))
}
