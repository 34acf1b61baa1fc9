package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
)

type CollectionRepo struct {
	pool *pgxpool.Pool
}

var _ domain.CollectionRepository = (*CollectionRepo)(nil)

func NewCollectionRepo(pool *pgxpool.Pool) *CollectionRepo {
	return &CollectionRepo{pool: pool}
}

const collectionColumns = `id, name, description, featured, created_at, updated_at`

func scanCollection(row pgx.Row) (*domain.Collection, error) {
	var c domain.Collection
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Featured, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepo) List(ctx context.Context) ([]domain.Collection, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+collectionColumns+` FROM collections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := []domain.Collection{}
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, *collection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

func (r *CollectionRepo) GetByID(ctx context.Context, id int64) (*domain.Collection, error) {
	collection, err := scanCollection(r.pool.QueryRow(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return collection, nil
}

func (r *CollectionRepo) Create(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error) {
	collection, err := scanCollection(r.pool.QueryRow(ctx,
		`INSERT INTO collections (name, description, featured)
		 VALUES ($1, $2, $3)
		 RETURNING `+collectionColumns,
		in.Name, in.Description, in.Featured))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (r *CollectionRepo) Update(ctx context.Context, id int64, in domain.CollectionInput) (*domain.Collection, error) {
	collection, err := scanCollection(r.pool.QueryRow(ctx,
		`UPDATE collections
		 SET name = $2, description = $3, featured = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+collectionColumns,
		id, in.Name, in.Description, in.Featured))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}
	return collection, nil
}

// Delete removes the collection; products cascade at the database level. The
// service publishes the matching product deletions itself.
func (r *CollectionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCollectionNotFound
	}
	return nil
}
