package handlers

import (
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/infrastructure/http/v1/dto"
)

// LotHTTPHandler is a type alias to shorten signatures.
type LotHTTPHandler = CatalogHandler[
	*lot.BulkLot,
	dto.CreateLotRequest,
	dto.UpdateLotRequest,
]

// NewLotHandler creates the configured generic handler for bulk lots.
func NewLotHandler(base *BaseHandler, service *lot.Service) *LotHTTPHandler {
	config := CatalogHandlerConfig[
		*lot.BulkLot,
		dto.CreateLotRequest,
		dto.UpdateLotRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "bulk lot",

		MapCreateDTO: func(req dto.CreateLotRequest) (*lot.BulkLot, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateLotRequest, existing *lot.BulkLot) *lot.BulkLot {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *lot.BulkLot) any {
			return dto.FromLot(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
