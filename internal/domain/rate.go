package domain

import (
	"context"
	"time"
)

// Rate is the daily metal rate shown on the storefront. Current, High and Low
// are stored in rupees per 10 grams. High and Low track the day's extremes and
// are recomputed server-side on every update.
type Rate struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Current   int64     `json:"current"`
	High      int64     `json:"high"`
	Low       int64     `json:"low"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key returns the cache key for live collection reconciliation.
func (r Rate) Key() int64 { return r.ID }

// RateRepository persists metal rates.
type RateRepository interface {
	List(ctx context.Context) ([]Rate, error)
	GetByID(ctx context.Context, id int64) (*Rate, error)
	// Update sets the current rate and folds it into the tracked high/low,
	// returning the full post-commit record.
	Update(ctx context.Context, id int64, current int64) (*Rate, error)
}
