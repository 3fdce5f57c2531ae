package http

import (
	"context"

	"github.com/friskytrails/api/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
}

// ProductRepository is the minimal interface the router requires from a product store.
type ProductRepository interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, productID string) error
}

// BlogRepository is the minimal interface the router requires from a blog store.
type BlogRepository interface {
	Put(ctx context.Context, b *domain.Blog) error
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	ListByState(ctx context.Context, stateID string) ([]domain.Blog, error)
	Scan(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, blogID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, blogID string) error
}

// BookingRepository is the minimal interface the router requires from a booking store.
type BookingRepository interface {
	Put(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	Update(ctx context.Context, bookingID string, updates map[string]interface{}) error
}

// ContactRepository is the minimal interface the router requires from a contact store.
type ContactRepository interface {
	Put(ctx context.Context, m *domain.ContactMessage) error
}
