package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/domain/allocation"
	"essentia/internal/infrastructure/http/v1/dto"
)

// AllocationHandler exposes bulk shop inventory operations.
type AllocationHandler struct {
	*BaseHandler
	service *allocation.Service
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(base *BaseHandler, service *allocation.Service) *AllocationHandler {
	return &AllocationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// AssignAllToShop handles POST /products/assign-all-to-shop - allocate
// every active product to one shop.
func (h *AllocationHandler) AssignAllToShop(c *gin.Context) {
	var req allocation.AssignRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.service.AssignAllToShop(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// UnassignAllFromShop handles POST /products/unassign-all-from-shop -
// remove every allocation row for one shop.
func (h *AllocationHandler) UnassignAllFromShop(c *gin.Context) {
	var req dto.UnassignRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deleted, err := h.service.UnassignAllFromShop(c.Request.Context(), req.ShopID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnassignResponse{
		ShopID:  req.ShopID.String(),
		Deleted: deleted,
	})
}

// ListByShop handles GET /shops/:id/inventory - allocation rows for one shop.
func (h *AllocationHandler) ListByShop(c *gin.Context) {
	shopID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	items, err := h.service.ListByShop(c.Request.Context(), shopID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
