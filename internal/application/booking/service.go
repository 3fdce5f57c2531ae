package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/pkg/id"
)

const fieldStatus = "status"

const travelDateLayout = "2006-01-02"

type Service interface {
	// Create books a product for the user. The travel date must be in the
	// future and the product must exist and be enabled.
	Create(ctx context.Context, user *domain.User, req domain.CreateBookingRequest) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Booking, error)
	// Get returns the booking only when it belongs to the user.
	Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	// Cancel marks the user's booking cancelled. Already-cancelled
	// bookings are rejected.
	Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
}

type bookingStore interface {
	Put(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	Update(ctx context.Context, bookingID string, updates map[string]interface{}) error
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	bookings bookingStore
	products productStore
	mail     mailer
	sms      smsSender
	now      func() time.Time
}

type ServiceDeps struct {
	Bookings bookingStore
	Products productStore
	Mailer   mailer
	SMS      smsSender // nil disables SMS notifications
	Now      func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		bookings: deps.Bookings,
		products: deps.Products,
		mail:     deps.Mailer,
		sms:      deps.SMS,
		now:      now,
	}
}

func (s *service) Create(ctx context.Context, user *domain.User, req domain.CreateBookingRequest) (*domain.Booking, error) {
	travelDate, err := time.Parse(travelDateLayout, req.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("travel_date must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}
	now := s.now().UTC()
	if !travelDate.After(now) {
		return nil, fmt.Errorf("travel date must be in the future: %w", domain.ErrBadRequest)
	}

	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Enable {
		return nil, fmt.Errorf("product not available: %w", domain.ErrNotFound)
	}

	b := &domain.Booking{
		BookingID:  id.New(),
		UserID:     user.UserID,
		ProductID:  p.ProductID,
		TravelDate: travelDate,
		Travellers: req.Travellers,
		Amount:     p.Price * int64(req.Travellers),
		Status:     domain.BookingStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.bookings.Put(ctx, b); err != nil {
		return nil, err
	}

	s.notify(ctx, user, p, b)
	return b, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		// Hide other users' bookings rather than admitting they exist.
		return nil, fmt.Errorf("booking not found: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingStatusCancelled {
		return nil, fmt.Errorf("booking already cancelled: %w", domain.ErrConflict)
	}
	if err := s.bookings.Update(ctx, bookingID, map[string]interface{}{
		fieldStatus: domain.BookingStatusCancelled,
	}); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusCancelled
	return b, nil
}

// notify sends the confirmation email and, when the user has a phone on
// file, an SMS. Both are best-effort once the booking is stored.
func (s *service) notify(ctx context.Context, user *domain.User, p *domain.Product, b *domain.Booking) {
	body := fmt.Sprintf(
		"Your booking for %s on %s is confirmed.\nTravellers: %d\nBooking reference: %s",
		p.Name, b.TravelDate.Format(travelDateLayout), b.Travellers, b.BookingID,
	)
	if err := s.mail.SendEmail(user.Email, "Booking confirmed", body); err != nil {
		slog.Warn("failed to send booking confirmation email", "booking_id", b.BookingID, "err", err)
	}
	if s.sms != nil && user.Phone != nil && *user.Phone != "" {
		msg := fmt.Sprintf("Booking confirmed for %s on %s. Ref %s",
			p.Name, b.TravelDate.Format(travelDateLayout), b.BookingID)
		if err := s.sms.SendSMS(ctx, *user.Phone, msg); err != nil {
			slog.Warn("failed to send booking confirmation sms", "booking_id", b.BookingID, "err", err)
		}
	}
}
