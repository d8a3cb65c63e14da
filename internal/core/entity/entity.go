// Package entity provides base types shared by all catalog entities.
package entity

import (
	"context"
	"time"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
)

// Versioned is implemented by entities under optimistic locking.
// The repository compares the struct's version against the stored row
// on update and owns the increment; domain code never bumps it.
type Versioned interface {
	GetVersion() int
	SetVersion(v int)
}

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains common fields for all entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// DeletionMark indicates soft-deleted entity
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// GetVersion returns the current version.
func (b *BaseEntity) GetVersion() int {
	return b.Version
}

// SetVersion sets the version. Used by repositories to sync the struct
// with the stored row after a successful write.
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// MarkDeleted sets the deletion mark.
func (b *BaseEntity) MarkDeleted() {
	b.DeletionMark = true
}

// Undelete clears the deletion mark.
func (b *BaseEntity) Undelete() {
	b.DeletionMark = false
}

// Catalog is the base type for reference data: lots, bottle sizes,
// products, shops.
type Catalog struct {
	BaseEntity

	// Code is a human-readable identifier (unique per catalog)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	now := time.Now().UTC()
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code can be auto-generated, so it's optional at creation

	return nil
}
