package app

import (
	"context"
	"log/slog"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	apperrors "github.com/abhisoniabhi/rp-jewellers-sub000/internal/errors"
)

// Service is the application layer. Every mutation commits to the database
// first and publishes the full post-commit record exactly once afterwards, so
// subscribers always receive state that survived persistence.
type Service struct {
	rates       domain.RateRepository
	products    domain.ProductRepository
	collections domain.CollectionRepository
	publisher   domain.Publisher
}

func NewService(rates domain.RateRepository, products domain.ProductRepository, collections domain.CollectionRepository, publisher domain.Publisher) *Service {
	return &Service{
		rates:       rates,
		products:    products,
		collections: collections,
		publisher:   publisher,
	}
}

// ListRates returns all metal rates.
func (s *Service) ListRates(ctx context.Context) ([]domain.Rate, error) {
	return s.rates.List(ctx)
}

// GetRate returns a single rate by ID.
func (s *Service) GetRate(ctx context.Context, id int64) (*domain.Rate, error) {
	return s.rates.GetByID(ctx, id)
}

// UpdateRate sets a rate's current value and broadcasts the committed record.
func (s *Service) UpdateRate(ctx context.Context, id int64, current int64) (*domain.Rate, error) {
	if current <= 0 {
		return nil, apperrors.ValidationError("rate must be positive").WithField("current", current)
	}

	rate, err := s.rates.Update(ctx, id, current)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.RateUpdated{Rate: *rate})
	slog.Info("Rate updated", "rate_id", rate.ID, "type", rate.Type, "current", rate.Current)
	return rate, nil
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListCollectionProducts returns the products of one collection.
func (s *Service) ListCollectionProducts(ctx context.Context, collectionID int64) ([]domain.Product, error) {
	if _, err := s.collections.GetByID(ctx, collectionID); err != nil {
		return nil, err
	}
	return s.products.ListByCollection(ctx, collectionID)
}

// GetProduct returns a single product by ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// CreateProduct persists a new product and broadcasts it.
func (s *Service) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	if _, err := s.collections.GetByID(ctx, in.CollectionID); err != nil {
		return nil, err
	}

	product, err := s.products.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.ProductCreated{Product: *product})
	slog.Info("Product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// UpdateProduct replaces a product's fields and broadcasts the committed record.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product, err := s.products.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.ProductUpdated{Product: *product})
	slog.Info("Product updated", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// DeleteProduct removes a product and broadcasts the deletion.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(domain.ProductDeleted{ID: id})
	slog.Info("Product deleted", "product_id", id)
	return nil
}

// ListCollections returns all collections.
func (s *Service) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.collections.List(ctx)
}

// GetCollection returns a single collection by ID.
func (s *Service) GetCollection(ctx context.Context, id int64) (*domain.Collection, error) {
	return s.collections.GetByID(ctx, id)
}

// CreateCollection persists a new collection and broadcasts it.
func (s *Service) CreateCollection(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error) {
	if in.Name == "" {
		return nil, apperrors.ValidationError("collection name is required")
	}

	collection, err := s.collections.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.CollectionCreated{Collection: *collection})
	slog.Info("Collection created", "collection_id", collection.ID, "name", collection.Name)
	return collection, nil
}

// UpdateCollection replaces a collection's fields and broadcasts the committed
// record.
func (s *Service) UpdateCollection(ctx context.Context, id int64, in domain.CollectionInput) (*domain.Collection, error) {
	if in.Name == "" {
		return nil, apperrors.ValidationError("collection name is required")
	}

	collection, err := s.collections.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.CollectionUpdated{Collection: *collection})
	slog.Info("Collection updated", "collection_id", collection.ID, "name", collection.Name)
	return collection, nil
}

// DeleteCollection removes a collection and broadcasts the deletion, including
// one deletion event per product that went away with it.
func (s *Service) DeleteCollection(ctx context.Context, id int64) error {
	cascaded, err := s.products.ListByCollection(ctx, id)
	if err != nil {
		return err
	}

	if err := s.collections.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(domain.CollectionDeleted{ID: id})
	for _, product := range cascaded {
		s.publisher.Publish(domain.ProductDeleted{ID: product.ID})
	}
	slog.Info("Collection deleted", "collection_id", id, "cascaded_products", len(cascaded))
	return nil
}

func validateProductInput(in domain.ProductInput) error {
	if in.Name == "" {
		return apperrors.ValidationError("product name is required")
	}
	if in.CollectionID <= 0 {
		return apperrors.ValidationError("collection id is required").WithField("collectionId", in.CollectionID)
	}
	if in.WeightGrams < 0 {
		return apperrors.ValidationError("weight must not be negative").WithField("weightGrams", in.WeightGrams)
	}
	return nil
}
