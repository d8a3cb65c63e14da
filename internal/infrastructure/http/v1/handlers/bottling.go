package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essentia/internal/domain/bottling"
	"essentia/internal/infrastructure/http/v1/dto"
)

// BottlingHandler exposes the conversion engine: single conversions,
// batch runs, reconciliation and the conversion history.
type BottlingHandler struct {
	*BaseHandler
	coordinator *bottling.Coordinator
	runner      *bottling.Runner
	reconciler  *bottling.Reconciler
}

// NewBottlingHandler creates a new bottling handler.
func NewBottlingHandler(base *BaseHandler, coordinator *bottling.Coordinator, runner *bottling.Runner, reconciler *bottling.Reconciler) *BottlingHandler {
	return &BottlingHandler{
		BaseHandler: base,
		coordinator: coordinator,
		runner:      runner,
		reconciler:  reconciler,
	}
}

// Bottle handles POST /bottling/bottle - one lot, one size, one shop.
func (h *BottlingHandler) Bottle(c *gin.Context) {
	var req bottling.ConvertRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.coordinator.Convert(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// BottleAllSizes handles POST /bottling/bottle-all-sizes - one lot into
// every configured size for one shop.
func (h *BottlingHandler) BottleAllSizes(c *gin.Context) {
	var req bottling.AllSizesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.runner.ConvertAllSizes(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// BottleAllBulk handles POST /bottling/bottle-all-bulk - every eligible
// lot into every size for every active shop.
func (h *BottlingHandler) BottleAllBulk(c *gin.Context) {
	// The body is optional: an empty request runs with defaults.
	var req bottling.AllBulkRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	report, err := h.runner.ConvertAllBulk(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ReturnShopInventory handles POST /bottling/return-shop-inventory -
// reverse all shop allocations back to bulk stock.
func (h *BottlingHandler) ReturnShopInventory(c *gin.Context) {
	report, err := h.reconciler.ReturnAllShopInventory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListRecords handles GET /bottling/records - conversion history, newest first.
func (h *BottlingHandler) ListRecords(c *gin.Context) {
	var q dto.ListRecordsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	f, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	records, total, err := h.coordinator.ListRecords(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      records,
		TotalCount: total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}
