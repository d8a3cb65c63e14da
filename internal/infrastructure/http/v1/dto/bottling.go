package dto

import (
	"time"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
	"essentia/internal/domain/bottling"
)

// ListRecordsQuery holds query parameters for conversion history.
type ListRecordsQuery struct {
	LotID  string `form:"lotId"`
	ShopID string `form:"shopId"`
	SizeML int64  `form:"sizeMl"`
	From   string `form:"from"`
	To     string `form:"to"`

	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ToFilter converts query parameters to a domain record filter.
func (q *ListRecordsQuery) ToFilter() (bottling.RecordFilter, error) {
	f := bottling.RecordFilter{
		Limit:  q.Limit,
		Offset: q.Offset,
	}

	if q.LotID != "" {
		lid, err := id.Parse(q.LotID)
		if err != nil {
			return f, apperror.NewValidation("invalid lotId format")
		}
		f.LotID = &lid
	}
	if q.ShopID != "" {
		sid, err := id.Parse(q.ShopID)
		if err != nil {
			return f, apperror.NewValidation("invalid shopId format")
		}
		f.ShopID = &sid
	}
	if q.SizeML > 0 {
		size := types.Volume(q.SizeML)
		f.SizeML = &size
	}
	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return f, apperror.NewValidation("invalid from timestamp, expected RFC3339")
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return f, apperror.NewValidation("invalid to timestamp, expected RFC3339")
		}
		f.To = &to
	}

	return f, nil
}

// UnassignRequest is the request body for bulk deallocation of a shop.
type UnassignRequest struct {
	ShopID id.ID `json:"shopId" binding:"required"`
}

// UnassignResponse reports how many allocation rows were removed.
type UnassignResponse struct {
	ShopID  string `json:"shopId"`
	Deleted int64  `json:"deleted"`
}
