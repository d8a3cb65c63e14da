package dto

import (
	"essentia/internal/core/entity"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a retail product
// manually. Bottling runs normally create products themselves.
type CreateProductRequest struct {
	Code         string      `json:"code"`
	Name         string      `json:"name" binding:"required"`
	SKU          string      `json:"sku" binding:"required"`
	SizeML       int64       `json:"sizeMl" binding:"required,gt=0"`
	LotID        *string     `json:"lotId"`
	UnitCost     types.Money `json:"unitCost"`
	SellingPrice types.Money `json:"sellingPrice"`
	StockCount   int         `json:"stockCount"`
	Active       *bool       `json:"active"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.RetailProduct, error) {
	p := &product.RetailProduct{
		Catalog:      entity.NewCatalog(r.Code, r.Name),
		SKU:          r.SKU,
		SizeML:       types.Volume(r.SizeML),
		UnitCost:     r.UnitCost,
		SellingPrice: r.SellingPrice,
		StockCount:   r.StockCount,
		Active:       true,
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	if r.LotID != nil && *r.LotID != "" {
		lid, err := id.Parse(*r.LotID)
		if err != nil {
			return nil, err
		}
		p.LotID = &lid
	}
	return p, nil
}

// UpdateProductRequest is the request body for updating a retail product.
type UpdateProductRequest struct {
	Code         string      `json:"code"`
	Name         string      `json:"name" binding:"required"`
	UnitCost     types.Money `json:"unitCost"`
	SellingPrice types.Money `json:"sellingPrice"`
	StockCount   int         `json:"stockCount"`
	Active       bool        `json:"active"`
	Version      int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
// SKU, size and lot lineage are immutable through the API.
func (r *UpdateProductRequest) ApplyTo(p *product.RetailProduct) {
	p.Code = r.Code
	p.Name = r.Name
	p.UnitCost = r.UnitCost
	p.SellingPrice = r.SellingPrice
	p.StockCount = r.StockCount
	p.Active = r.Active
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a retail product.
type ProductResponse struct {
	CatalogResponse
	SKU          string      `json:"sku"`
	SizeML       int64       `json:"sizeMl"`
	LotID        *string     `json:"lotId,omitempty"`
	UnitCost     types.Money `json:"unitCost"`
	SellingPrice types.Money `json:"sellingPrice"`
	StockCount   int         `json:"stockCount"`
	Active       bool        `json:"active"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.RetailProduct) *ProductResponse {
	resp := &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		SKU:             p.SKU,
		SizeML:          p.SizeML.ML(),
		UnitCost:        p.UnitCost,
		SellingPrice:    p.SellingPrice,
		StockCount:      p.StockCount,
		Active:          p.Active,
	}
	if p.LotID != nil {
		s := p.LotID.String()
		resp.LotID = &s
	}
	return resp
}
