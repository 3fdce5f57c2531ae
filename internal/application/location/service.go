package location

import (
	"context"
	"time"

	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/pkg/id"
)

// Service manages the country/state/city hierarchy and serves the
// state detail aggregate (state plus its enabled blogs).
type Service interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListStates(ctx context.Context) ([]domain.State, error)
	GetStateWithBlogs(ctx context.Context, slug string) (*domain.StateWithBlogs, error)
	ListCitiesByState(ctx context.Context, stateID string) ([]domain.City, error)
	CreateCountry(ctx context.Context, req domain.CreateCountryRequest) (*domain.Country, error)
	CreateState(ctx context.Context, req domain.CreateStateRequest) (*domain.State, error)
	CreateCity(ctx context.Context, req domain.CreateCityRequest) (*domain.City, error)
}

type countryStore interface {
	Put(ctx context.Context, c *domain.Country) error
	Scan(ctx context.Context) ([]domain.Country, error)
}

type stateStore interface {
	Put(ctx context.Context, s *domain.State) error
	GetBySlug(ctx context.Context, slug string) (*domain.State, error)
	Scan(ctx context.Context) ([]domain.State, error)
}

type cityStore interface {
	Put(ctx context.Context, c *domain.City) error
	ListByState(ctx context.Context, stateID string) ([]domain.City, error)
}

type blogLister interface {
	ListByState(ctx context.Context, stateID string) ([]domain.Blog, error)
}

type service struct {
	countries countryStore
	states    stateStore
	cities    cityStore
	blogs     blogLister
	now       func() time.Time
}

type ServiceDeps struct {
	Countries countryStore
	States    stateStore
	Cities    cityStore
	Blogs     blogLister
}

func NewService(deps ServiceDeps) Service {
	return &service{
		countries: deps.Countries,
		states:    deps.States,
		cities:    deps.Cities,
		blogs:     deps.Blogs,
		now:       time.Now,
	}
}

func (s *service) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.countries.Scan(ctx)
}

func (s *service) ListStates(ctx context.Context) ([]domain.State, error) {
	return s.states.Scan(ctx)
}

// GetStateWithBlogs resolves a state by slug and attaches its enabled
// blogs. Disabled blogs never surface on the public page.
func (s *service) GetStateWithBlogs(ctx context.Context, slug string) (*domain.StateWithBlogs, error) {
	st, err := s.states.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	blogs, err := s.blogs.ListByState(ctx, st.StateID)
	if err != nil {
		return nil, err
	}
	enabled := blogs[:0]
	for _, b := range blogs {
		if b.Enable {
			enabled = append(enabled, b)
		}
	}
	return &domain.StateWithBlogs{State: st, Blogs: enabled}, nil
}

func (s *service) ListCitiesByState(ctx context.Context, stateID string) ([]domain.City, error) {
	return s.cities.ListByState(ctx, stateID)
}

func (s *service) CreateCountry(ctx context.Context, req domain.CreateCountryRequest) (*domain.Country, error) {
	now := s.now().UTC()
	c := &domain.Country{
		CountryID: id.New(),
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.countries.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) CreateState(ctx context.Context, req domain.CreateStateRequest) (*domain.State, error) {
	now := s.now().UTC()
	st := &domain.State{
		StateID:   id.New(),
		CountryID: req.CountryID,
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.states.Put(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) CreateCity(ctx context.Context, req domain.CreateCityRequest) (*domain.City, error) {
	now := s.now().UTC()
	c := &domain.City{
		CityID:    id.New(),
		StateID:   req.StateID,
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cities.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
