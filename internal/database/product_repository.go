package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

var _ domain.ProductRepository = (*ProductRepo)(nil)

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `id, collection_id, name, description, weight_grams, karat, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CollectionID, &p.Name, &p.Description, &p.WeightGrams,
		&p.Karat, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepo) ListByCollection(ctx context.Context, collectionID int64) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE collection_id = $1 ORDER BY id`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by collection: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products by collection: %w", err)
	}
	return products, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *ProductRepo) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx,
		`INSERT INTO products (collection_id, name, description, weight_grams, karat, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+productColumns,
		in.CollectionID, in.Name, in.Description, in.WeightGrams, in.Karat, in.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE products
		 SET collection_id = $2, name = $3, description = $4, weight_grams = $5,
		     karat = $6, image_url = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, in.CollectionID, in.Name, in.Description, in.WeightGrams, in.Karat, in.ImageURL))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
