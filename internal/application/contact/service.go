package contact

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/friskytrails/api/internal/domain"
	googleinfra "github.com/friskytrails/api/internal/infrastructure/google"
	"github.com/friskytrails/api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactMessage, error)
}

type contactStore interface {
	Put(ctx context.Context, m *domain.ContactMessage) error
}

type service struct {
	contacts contactStore
	sheet    googleinfra.RowAppender
	now      func() time.Time
}

func NewService(contacts contactStore, sheet googleinfra.RowAppender) Service {
	return &service{contacts: contacts, sheet: sheet, now: time.Now}
}

func (s *service) Submit(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{
		ContactID: id.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.contacts.Put(ctx, m); err != nil {
		return nil, err
	}
	// Mirror to the enquiries sheet; a mirror failure never loses the
	// stored message.
	if s.sheet != nil {
		row := []interface{}{m.Name, m.Email, m.Message, m.CreatedAt.Format(time.RFC3339)}
		if err := s.sheet.AppendRow(ctx, googleinfra.SheetContacts, row); err != nil {
			slog.Warn("failed to mirror contact message to sheet", "contact_id", m.ContactID, "err", err)
		}
	}
	return m, nil
}
