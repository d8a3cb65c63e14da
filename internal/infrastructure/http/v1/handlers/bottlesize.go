package handlers

import (
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/infrastructure/http/v1/dto"
)

// BottleSizeHTTPHandler is a type alias to shorten signatures.
type BottleSizeHTTPHandler = CatalogHandler[
	*bottlesize.ComponentStock,
	dto.CreateBottleSizeRequest,
	dto.UpdateBottleSizeRequest,
]

// NewBottleSizeHandler creates the configured generic handler for component stock.
func NewBottleSizeHandler(base *BaseHandler, service *bottlesize.Service) *BottleSizeHTTPHandler {
	config := CatalogHandlerConfig[
		*bottlesize.ComponentStock,
		dto.CreateBottleSizeRequest,
		dto.UpdateBottleSizeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "bottle size",

		MapCreateDTO: func(req dto.CreateBottleSizeRequest) (*bottlesize.ComponentStock, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateBottleSizeRequest, existing *bottlesize.ComponentStock) *bottlesize.ComponentStock {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *bottlesize.ComponentStock) any {
			return dto.FromBottleSize(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
