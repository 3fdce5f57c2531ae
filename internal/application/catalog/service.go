package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/pkg/id"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCountryID   = "country_id"
	fieldStateID     = "state_id"
	fieldCityID      = "city_id"
	fieldImageKeys   = "image_keys"
	fieldEnable      = "enable"
)

// Service exposes the product catalog: public reads by slug or listing,
// admin-side create, update and soft delete.
type Service interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, productID string) error
}

type service struct {
	products productStore
	now      func() time.Time
}

func NewService(products productStore) Service {
	return &service{products: products, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.Scan(ctx)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Enable {
		return nil, fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.products.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fmt.Errorf("slug already in use: %w", domain.ErrConflict)
	}
	now := s.now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		CountryID:   req.CountryID,
		StateID:     req.StateID,
		CityID:      req.CityID,
		ImageKeys:   req.ImageKeys,
		Enable:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive: %w", domain.ErrBadRequest)
		}
		updates[fieldPrice] = *req.Price
	}
	if req.CountryID != nil {
		updates[fieldCountryID] = *req.CountryID
	}
	if req.StateID != nil {
		updates[fieldStateID] = *req.StateID
	}
	if req.CityID != nil {
		updates[fieldCityID] = *req.CityID
	}
	if req.ImageKeys != nil {
		updates[fieldImageKeys] = *req.ImageKeys
	}
	if req.Enable != nil {
		updates[fieldEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	if err := s.products.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return s.products.Get(ctx, productID)
}

func (s *service) Delete(ctx context.Context, productID string) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}
	return s.products.SoftDelete(ctx, productID)
}
