package dto

import (
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/lot"
)

// --- Request DTOs ---

// CreateLotRequest is the request body for creating a bulk lot.
type CreateLotRequest struct {
	Code      string      `json:"code"`
	Name      string      `json:"name" binding:"required"`
	VolumeML  int64       `json:"volumeMl" binding:"required,gt=0"`
	CostPerML types.Money `json:"costPerMl"`
	Category  string      `json:"category"`
	Active    *bool       `json:"active"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLotRequest) ToEntity() *lot.BulkLot {
	l := lot.NewBulkLot(r.Code, r.Name, types.Volume(r.VolumeML), r.CostPerML)
	l.Category = r.Category
	if r.Active != nil {
		l.Active = *r.Active
	}
	return l
}

// UpdateLotRequest is the request body for updating a bulk lot.
type UpdateLotRequest struct {
	Code              string      `json:"code"`
	Name              string      `json:"name" binding:"required"`
	RemainingVolumeML int64       `json:"remainingVolumeMl"`
	CostPerML         types.Money `json:"costPerMl"`
	Category          string      `json:"category"`
	Active            bool        `json:"active"`
	Version           int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLotRequest) ApplyTo(l *lot.BulkLot) {
	l.Code = r.Code
	l.Name = r.Name
	l.RemainingVolumeML = types.Volume(r.RemainingVolumeML)
	l.CostPerML = r.CostPerML
	l.Category = r.Category
	l.Active = r.Active
	l.Version = r.Version
}

// --- Response DTOs ---

// LotResponse is the response body for a bulk lot.
type LotResponse struct {
	CatalogResponse
	RemainingVolumeML int64       `json:"remainingVolumeMl"`
	CostPerML         types.Money `json:"costPerMl"`
	Category          string      `json:"category"`
	Active            bool        `json:"active"`
}

// FromLot creates response DTO from domain entity.
func FromLot(l *lot.BulkLot) *LotResponse {
	return &LotResponse{
		CatalogResponse:   FromCatalog(l.Catalog),
		RemainingVolumeML: l.RemainingVolumeML.ML(),
		CostPerML:         l.CostPerML,
		Category:          l.Category,
		Active:            l.Active,
	}
}
