package domain

import (
	"context"
	"time"
)

// Product is a single catalog item belonging to a collection.
type Product struct {
	ID           int64     `json:"id"`
	CollectionID int64     `json:"collectionId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	WeightGrams  float64   `json:"weightGrams"`
	Karat        string    `json:"karat"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Key returns the cache key for live collection reconciliation.
func (p Product) Key() int64 { return p.ID }

// Collection groups products (e.g. "Bridal", "Temple Jewellery").
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Key returns the cache key for live collection reconciliation.
func (c Collection) Key() int64 { return c.ID }

// ProductInput carries the caller-settable product fields for create/update.
type ProductInput struct {
	CollectionID int64   `json:"collectionId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	WeightGrams  float64 `json:"weightGrams"`
	Karat        string  `json:"karat"`
	ImageURL     string  `json:"imageUrl"`
}

// CollectionInput carries the caller-settable collection fields.
type CollectionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	ListByCollection(ctx context.Context, collectionID int64) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// CollectionRepository persists catalog collections.
type CollectionRepository interface {
	List(ctx context.Context) ([]Collection, error)
	GetByID(ctx context.Context, id int64) (*Collection, error)
	Create(ctx context.Context, in CollectionInput) (*Collection, error)
	Update(ctx context.Context, id int64, in CollectionInput) (*Collection, error)
	Delete(ctx context.Context, id int64) error
}
