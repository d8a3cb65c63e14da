package dto

import (
	"essentia/internal/domain/catalogs/shop"
)

// --- Request DTOs ---

// CreateShopRequest is the request body for creating a shop.
type CreateShopRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateShopRequest) ToEntity() *shop.Shop {
	s := shop.NewShop(r.Code, r.Name)
	s.Address = r.Address
	if r.Active != nil {
		s.Active = *r.Active
	}
	return s
}

// UpdateShopRequest is the request body for updating a shop.
type UpdateShopRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Active  bool    `json:"active"`
	Version int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateShopRequest) ApplyTo(s *shop.Shop) {
	s.Code = r.Code
	s.Name = r.Name
	s.Address = r.Address
	s.Active = r.Active
	s.Version = r.Version
}

// --- Response DTOs ---

// ShopResponse is the response body for a shop.
type ShopResponse struct {
	CatalogResponse
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}

// FromShop creates response DTO from domain entity.
func FromShop(s *shop.Shop) *ShopResponse {
	return &ShopResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		Address:         s.Address,
		Active:          s.Active,
	}
}
