package handlers

import (
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/infrastructure/http/v1/dto"
)

// ProductHTTPHandler is a type alias to shorten signatures.
type ProductHTTPHandler = CatalogHandler[
	*product.RetailProduct,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// NewProductHandler creates the configured generic handler for retail products.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHTTPHandler {
	config := CatalogHandlerConfig[
		*product.RetailProduct,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "retail product",

		MapCreateDTO: func(req dto.CreateProductRequest) (*product.RetailProduct, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.RetailProduct) *product.RetailProduct {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *product.RetailProduct) any {
			return dto.FromProduct(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
