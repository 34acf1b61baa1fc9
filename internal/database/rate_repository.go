package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
)

type RateRepo struct {
	pool *pgxpool.Pool
}

var _ domain.RateRepository = (*RateRepo)(nil)

func NewRateRepo(pool *pgxpool.Pool) *RateRepo {
	return &RateRepo{pool: pool}
}

const rateColumns = `id, type, current, high, low, category, updated_at`

func scanRate(row pgx.Row) (*domain.Rate, error) {
	var r domain.Rate
	err := row.Scan(&r.ID, &r.Type, &r.Current, &r.High, &r.Low, &r.Category, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RateRepo) List(ctx context.Context) ([]domain.Rate, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+rateColumns+` FROM rates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.Rate{}
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}

func (r *RateRepo) GetByID(ctx context.Context, id int64) (*domain.Rate, error) {
	rate, err := scanRate(r.pool.QueryRow(ctx, `SELECT `+rateColumns+` FROM rates WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}
	return rate, nil
}

// Update sets the current rate and folds it into the day's high/low in a
// single statement, returning the post-commit row.
func (r *RateRepo) Update(ctx context.Context, id int64, current int64) (*domain.Rate, error) {
	rate, err := scanRate(r.pool.QueryRow(ctx,
		`UPDATE rates
		 SET current = $2,
		     high = GREATEST(high, $2),
		     low = LEAST(low, $2),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+rateColumns,
		id, current))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update rate: %w", err)
	}
	return rate, nil
}
