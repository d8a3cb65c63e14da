// Package pricing resolves retail selling prices for bottled products.
//
// Prices are looked up in an injected table keyed by price category and
// bottle size. The table is built once at startup from configuration and
// treated as read-only afterwards.
package pricing

import (
	"strings"

	"essentia/internal/core/apperror"
	"essentia/internal/core/types"
)

// Category is a price band for bottled products.
type Category string

const (
	CategoryStandard  Category = "standard"
	CategorySelective Category = "selective"
)

// Table maps category and bottle size to the unit selling price.
type Table map[Category]map[types.Volume]types.Money

// NewTable builds a table from per-ml rates: price = rate * size.
// The size list doubles as the configured-size allow-list.
func NewTable(sizes []types.Volume, standardRate, selectiveRate types.Money) Table {
	t := Table{
		CategoryStandard:  make(map[types.Volume]types.Money, len(sizes)),
		CategorySelective: make(map[types.Volume]types.Money, len(sizes)),
	}
	for _, size := range sizes {
		t[CategoryStandard][size] = standardRate.Mul(size.Decimal())
		t[CategorySelective][size] = selectiveRate.Mul(size.Decimal())
	}
	return t
}

// Sizes returns the configured bottle sizes, in no particular order.
func (t Table) Sizes() []types.Volume {
	seen := make(map[types.Volume]struct{})
	var sizes []types.Volume
	for _, byCat := range t {
		for size := range byCat {
			if _, ok := seen[size]; !ok {
				seen[size] = struct{}{}
				sizes = append(sizes, size)
			}
		}
	}
	return sizes
}

// HasSize reports whether the size appears in the table.
func (t Table) HasSize(sizeML types.Volume) bool {
	for _, byCat := range t {
		if _, ok := byCat[sizeML]; ok {
			return true
		}
	}
	return false
}

// Resolver resolves the selling price for a lot category tag and size.
type Resolver struct {
	table           Table
	selectiveMarker string
}

// NewResolver creates a pricing resolver.
// selectiveMarker is the substring that marks a lot as selective.
func NewResolver(table Table, selectiveMarker string) *Resolver {
	return &Resolver{table: table, selectiveMarker: selectiveMarker}
}

// Table exposes the underlying table (read-only use).
func (r *Resolver) Table() Table {
	return r.table
}

// ResolveCategory maps a lot's category tag to a price category.
// Matching is a case-insensitive substring test against the selective
// marker; everything else is standard.
func (r *Resolver) ResolveCategory(categoryTag string) Category {
	if r.selectiveMarker != "" &&
		strings.Contains(strings.ToLower(categoryTag), strings.ToLower(r.selectiveMarker)) {
		return CategorySelective
	}
	return CategoryStandard
}

// Lookup returns the unit selling price for a category tag and size.
// A missing table entry is a configuration error, not a fallback.
func (r *Resolver) Lookup(categoryTag string, sizeML types.Volume) (types.Money, error) {
	category := r.ResolveCategory(categoryTag)

	byCat, ok := r.table[category]
	if !ok {
		return types.ZeroMoney(), apperror.NewInvalidConfiguration("no pricing configured for category").
			WithDetail("category", string(category))
	}

	price, ok := byCat[sizeML]
	if !ok {
		return types.ZeroMoney(), apperror.NewInvalidConfiguration("no pricing configured for bottle size").
			WithDetail("category", string(category)).
			WithDetail("size_ml", sizeML.ML())
	}

	return price, nil
}
