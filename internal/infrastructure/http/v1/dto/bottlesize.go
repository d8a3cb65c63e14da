package dto

import (
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/bottlesize"
)

// --- Request DTOs ---

// CreateBottleSizeRequest is the request body for creating component stock.
type CreateBottleSizeRequest struct {
	Code           string      `json:"code"`
	Name           string      `json:"name" binding:"required"`
	SizeML         int64       `json:"sizeMl" binding:"required,gt=0"`
	AvailableCount int         `json:"availableCount"`
	UnitCost       types.Money `json:"unitCost"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBottleSizeRequest) ToEntity() *bottlesize.ComponentStock {
	return bottlesize.NewComponentStock(r.Code, r.Name, types.Volume(r.SizeML), r.AvailableCount, r.UnitCost)
}

// UpdateBottleSizeRequest is the request body for updating component stock.
type UpdateBottleSizeRequest struct {
	Code           string      `json:"code"`
	Name           string      `json:"name" binding:"required"`
	SizeML         int64       `json:"sizeMl" binding:"required,gt=0"`
	AvailableCount int         `json:"availableCount"`
	UnitCost       types.Money `json:"unitCost"`
	Version        int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBottleSizeRequest) ApplyTo(c *bottlesize.ComponentStock) {
	c.Code = r.Code
	c.Name = r.Name
	c.SizeML = types.Volume(r.SizeML)
	c.AvailableCount = r.AvailableCount
	c.UnitCost = r.UnitCost
	c.Version = r.Version
}

// --- Response DTOs ---

// BottleSizeResponse is the response body for component stock.
type BottleSizeResponse struct {
	CatalogResponse
	SizeML         int64       `json:"sizeMl"`
	AvailableCount int         `json:"availableCount"`
	UnitCost       types.Money `json:"unitCost"`
}

// FromBottleSize creates response DTO from domain entity.
func FromBottleSize(c *bottlesize.ComponentStock) *BottleSizeResponse {
	return &BottleSizeResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		SizeML:          c.SizeML.ML(),
		AvailableCount:  c.AvailableCount,
		UnitCost:        c.UnitCost,
	}
}
