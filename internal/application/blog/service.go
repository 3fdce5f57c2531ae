package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/pkg/id"
)

const (
	fieldTitle    = "title"
	fieldContent  = "content"
	fieldCoverKey = "cover_key"
	fieldStateID  = "state_id"
	fieldEnable   = "enable"
)

type Service interface {
	List(ctx context.Context) ([]domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	Create(ctx context.Context, req domain.CreateBlogRequest) (*domain.Blog, error)
	Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) (*domain.Blog, error)
	Delete(ctx context.Context, blogID string) error
}

type blogStore interface {
	Put(ctx context.Context, b *domain.Blog) error
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	Scan(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, blogID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, blogID string) error
}

type service struct {
	blogs blogStore
	now   func() time.Time
}

func NewService(blogs blogStore) Service {
	return &service{blogs: blogs, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.Scan(ctx)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	b, err := s.blogs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !b.Enable {
		return nil, fmt.Errorf("blog not found: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateBlogRequest) (*domain.Blog, error) {
	if _, err := s.blogs.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fmt.Errorf("slug already in use: %w", domain.ErrConflict)
	}
	now := s.now().UTC()
	b := &domain.Blog{
		BlogID:    id.New(),
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		CoverKey:  req.CoverKey,
		StateID:   req.StateID,
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.blogs.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) (*domain.Blog, error) {
	if _, err := s.blogs.Get(ctx, blogID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Content != nil {
		updates[fieldContent] = *req.Content
	}
	if req.CoverKey != nil {
		updates[fieldCoverKey] = *req.CoverKey
	}
	if req.StateID != nil {
		updates[fieldStateID] = *req.StateID
	}
	if req.Enable != nil {
		updates[fieldEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	if err := s.blogs.Update(ctx, blogID, updates); err != nil {
		return nil, err
	}
	return s.blogs.Get(ctx, blogID)
}

func (s *service) Delete(ctx context.Context, blogID string) error {
	if _, err := s.blogs.Get(ctx, blogID); err != nil {
		return err
	}
	return s.blogs.SoftDelete(ctx, blogID)
}
