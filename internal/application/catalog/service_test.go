package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/friskytrails/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Put(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Scan(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if ps, _ := args.Get(0).([]domain.Product); ps != nil {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	return m.Called(ctx, productID, updates).Error(0)
}
func (m *mockProductStore) SoftDelete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func TestCreate_DuplicateSlug_Conflict(t *testing.T) {
	store := &mockProductStore{}
	store.On("GetBySlug", mock.Anything, "spiti-circuit").
		Return(&domain.Product{ProductID: "p1", Slug: "spiti-circuit"}, nil)

	svc := NewService(store)
	_, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name: "Spiti Circuit", Slug: "spiti-circuit", Price: 100,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_NewSlug_StoresEnabledProduct(t *testing.T) {
	store := &mockProductStore{}
	store.On("GetBySlug", mock.Anything, "spiti-circuit").Return(nil, domain.ErrNotFound)
	var stored *domain.Product
	store.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Product)
	}).Return(nil)

	svc := NewService(store)
	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name: "Spiti Circuit", Slug: "spiti-circuit", Price: 100,
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, p.Enable)
	assert.NotEmpty(t, p.ProductID)
}

func TestGetBySlug_DisabledProduct_Hidden(t *testing.T) {
	store := &mockProductStore{}
	store.On("GetBySlug", mock.Anything, "retired-trip").
		Return(&domain.Product{ProductID: "p1", Slug: "retired-trip", Enable: false}, nil)

	svc := NewService(store)
	_, err := svc.GetBySlug(context.Background(), "retired-trip")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_NonPositivePrice_Rejected(t *testing.T) {
	store := &mockProductStore{}
	store.On("Get", mock.Anything, "p1").
		Return(&domain.Product{ProductID: "p1", Enable: true}, nil)

	svc := NewService(store)
	price := int64(0)
	_, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{Price: &price})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
