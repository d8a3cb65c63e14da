package handlers

import (
	"essentia/internal/domain/catalogs/shop"
	"essentia/internal/infrastructure/http/v1/dto"
)

// ShopHTTPHandler is a type alias to shorten signatures.
type ShopHTTPHandler = CatalogHandler[
	*shop.Shop,
	dto.CreateShopRequest,
	dto.UpdateShopRequest,
]

// NewShopHandler creates the configured generic handler for shops.
func NewShopHandler(base *BaseHandler, service *shop.Service) *ShopHTTPHandler {
	config := CatalogHandlerConfig[
		*shop.Shop,
		dto.CreateShopRequest,
		dto.UpdateShopRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "shop",

		MapCreateDTO: func(req dto.CreateShopRequest) (*shop.Shop, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateShopRequest, existing *shop.Shop) *shop.Shop {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *shop.Shop) any {
			return dto.FromShop(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
