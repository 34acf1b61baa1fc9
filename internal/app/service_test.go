package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	apperrors "github.com/abhisoniabhi/rp-jewellers-sub000/internal/errors"
)

type mockRateRepo struct {
	ListFunc    func(ctx context.Context) ([]domain.Rate, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Rate, error)
	UpdateFunc  func(ctx context.Context, id int64, current int64) (*domain.Rate, error)
}

func (m *mockRateRepo) List(ctx context.Context) ([]domain.Rate, error) {
	return m.ListFunc(ctx)
}

func (m *mockRateRepo) GetByID(ctx context.Context, id int64) (*domain.Rate, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRateRepo) Update(ctx context.Context, id int64, current int64) (*domain.Rate, error) {
	return m.UpdateFunc(ctx, id, current)
}

type mockProductRepo struct {
	ListFunc             func(ctx context.Context) ([]domain.Product, error)
	ListByCollectionFunc func(ctx context.Context, collectionID int64) ([]domain.Product, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Product, error)
	CreateFunc           func(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateFunc           func(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteFunc           func(ctx context.Context, id int64) error
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockProductRepo) ListByCollection(ctx context.Context, collectionID int64) ([]domain.Product, error) {
	return m.ListByCollectionFunc(ctx, collectionID)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockProductRepo) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	return m.UpdateFunc(ctx, id, in)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockCollectionRepo struct {
	ListFunc    func(ctx context.Context) ([]domain.Collection, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Collection, error)
	CreateFunc  func(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error)
	UpdateFunc  func(ctx context.Context, id int64, in domain.CollectionInput) (*domain.Collection, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockCollectionRepo) List(ctx context.Context) ([]domain.Collection, error) {
	return m.ListFunc(ctx)
}

func (m *mockCollectionRepo) GetByID(ctx context.Context, id int64) (*domain.Collection, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockCollectionRepo) Create(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockCollectionRepo) Update(ctx context.Context, id int64, in domain.CollectionInput) (*domain.Collection, error) {
	return m.UpdateFunc(ctx, id, in)
}

func (m *mockCollectionRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// recordingPublisher captures every published event in order.
type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(event domain.Event) {
	p.events = append(p.events, event)
}

func goldRate() *domain.Rate {
	return &domain.Rate{
		ID:        1,
		Type:      "gold",
		Current:   91800,
		High:      91800,
		Low:       91500,
		Category:  "22K",
		UpdatedAt: time.Now().UTC(),
	}
}

func TestUpdateRate_PublishesCommittedRecord(t *testing.T) {
	committed := goldRate()
	rates := &mockRateRepo{
		UpdateFunc: func(ctx context.Context, id int64, current int64) (*domain.Rate, error) {
			assert.Equal(t, int64(1), id)
			assert.Equal(t, int64(91800), current)
			return committed, nil
		},
	}
	publisher := &recordingPublisher{}
	service := NewService(rates, nil, nil, publisher)

	rate, err := service.UpdateRate(context.Background(), 1, 91800)
	require.NoError(t, err)
	assert.Equal(t, committed, rate)

	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].(domain.RateUpdated)
	require.True(t, ok)
	assert.Equal(t, domain.TopicRateUpdated, event.EventTopic())
	assert.Equal(t, *committed, event.Rate, "the broadcast carries the post-commit record")
}

func TestUpdateRate_RejectsNonPositiveValue(t *testing.T) {
	publisher := &recordingPublisher{}
	service := NewService(&mockRateRepo{}, nil, nil, publisher)

	for _, current := range []int64{0, -5} {
		_, err := service.UpdateRate(context.Background(), 1, current)
		var structured *apperrors.Error
		require.ErrorAs(t, err, &structured)
		assert.Equal(t, apperrors.TypeValidation, structured.Type)
	}
	assert.Empty(t, publisher.events, "rejected updates publish nothing")
}

func TestUpdateRate_FailedCommitPublishesNothing(t *testing.T) {
	rates := &mockRateRepo{
		UpdateFunc: func(ctx context.Context, id int64, current int64) (*domain.Rate, error) {
			return nil, errors.New("connection reset")
		},
	}
	publisher := &recordingPublisher{}
	service := NewService(rates, nil, nil, publisher)

	_, err := service.UpdateRate(context.Background(), 1, 91800)
	require.Error(t, err)
	assert.Empty(t, publisher.events)
}

func TestCreateProduct_PublishesCreatedEvent(t *testing.T) {
	created := &domain.Product{ID: 7, CollectionID: 2, Name: "Antique Jhumka"}
	products := &mockProductRepo{
		CreateFunc: func(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
			return created, nil
		},
	}
	collections := &mockCollectionRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Collection, error) {
			return &domain.Collection{ID: id}, nil
		},
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, products, collections, publisher)

	product, err := service.CreateProduct(context.Background(), domain.ProductInput{
		CollectionID: 2,
		Name:         "Antique Jhumka",
	})
	require.NoError(t, err)
	assert.Equal(t, created, product)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.TopicProductCreated, publisher.events[0].EventTopic())
}

func TestCreateProduct_UnknownCollection(t *testing.T) {
	collections := &mockCollectionRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Collection, error) {
			return nil, domain.ErrCollectionNotFound
		},
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, &mockProductRepo{}, collections, publisher)

	_, err := service.CreateProduct(context.Background(), domain.ProductInput{CollectionID: 99, Name: "Ring"})
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	assert.Empty(t, publisher.events)
}

func TestCreateProduct_ValidatesInput(t *testing.T) {
	publisher := &recordingPublisher{}
	service := NewService(nil, &mockProductRepo{}, &mockCollectionRepo{}, publisher)

	tests := []struct {
		name  string
		input domain.ProductInput
	}{
		{"missing name", domain.ProductInput{CollectionID: 1}},
		{"missing collection", domain.ProductInput{Name: "Ring"}},
		{"negative weight", domain.ProductInput{CollectionID: 1, Name: "Ring", WeightGrams: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateProduct(context.Background(), tt.input)
			var structured *apperrors.Error
			require.ErrorAs(t, err, &structured)
			assert.Equal(t, apperrors.TypeValidation, structured.Type)
		})
	}
	assert.Empty(t, publisher.events)
}

func TestDeleteProduct_PublishesDeletionWithID(t *testing.T) {
	products := &mockProductRepo{
		DeleteFunc: func(ctx context.Context, id int64) error { return nil },
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, products, nil, publisher)

	require.NoError(t, service.DeleteProduct(context.Background(), 7))

	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].(domain.ProductDeleted)
	require.True(t, ok)
	assert.Equal(t, int64(7), event.ID)
}

func TestDeleteProduct_MissingProductPublishesNothing(t *testing.T) {
	products := &mockProductRepo{
		DeleteFunc: func(ctx context.Context, id int64) error { return domain.ErrProductNotFound },
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, products, nil, publisher)

	err := service.DeleteProduct(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, publisher.events)
}

func TestUpdateCollection_PublishesUpdatedEvent(t *testing.T) {
	updated := &domain.Collection{ID: 3, Name: "Bridal Sets", Featured: true}
	collections := &mockCollectionRepo{
		UpdateFunc: func(ctx context.Context, id int64, in domain.CollectionInput) (*domain.Collection, error) {
			return updated, nil
		},
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, nil, collections, publisher)

	collection, err := service.UpdateCollection(context.Background(), 3, domain.CollectionInput{Name: "Bridal Sets", Featured: true})
	require.NoError(t, err)
	assert.Equal(t, updated, collection)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.TopicCollectionUpdated, publisher.events[0].EventTopic())
}

func TestDeleteCollection_PublishesCascadedProductDeletions(t *testing.T) {
	products := &mockProductRepo{
		ListByCollectionFunc: func(ctx context.Context, collectionID int64) ([]domain.Product, error) {
			return []domain.Product{{ID: 10}, {ID: 11}}, nil
		},
	}
	collections := &mockCollectionRepo{
		DeleteFunc: func(ctx context.Context, id int64) error { return nil },
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, products, collections, publisher)

	require.NoError(t, service.DeleteCollection(context.Background(), 3))

	require.Len(t, publisher.events, 3)
	assert.Equal(t, domain.TopicCollectionDeleted, publisher.events[0].EventTopic())
	assert.Equal(t, domain.TopicProductDeleted, publisher.events[1].EventTopic())
	assert.Equal(t, domain.TopicProductDeleted, publisher.events[2].EventTopic())
	assert.Equal(t, int64(10), publisher.events[1].(domain.ProductDeleted).ID)
	assert.Equal(t, int64(11), publisher.events[2].(domain.ProductDeleted).ID)
}

func TestDeleteCollection_FailedDeletePublishesNothing(t *testing.T) {
	products := &mockProductRepo{
		ListByCollectionFunc: func(ctx context.Context, collectionID int64) ([]domain.Product, error) {
			return nil, nil
		},
	}
	collections := &mockCollectionRepo{
		DeleteFunc: func(ctx context.Context, id int64) error { return domain.ErrCollectionNotFound },
	}
	publisher := &recordingPublisher{}
	service := NewService(nil, products, collections, publisher)

	err := service.DeleteCollection(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	assert.Empty(t, publisher.events)
}
