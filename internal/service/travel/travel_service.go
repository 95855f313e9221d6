package travel

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

const HomeLimit = 6

type TravelUseCase interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.TravelOption, error)
	Count(ctx context.Context, filter domain.SearchFilter) (int, error)
	Home(ctx context.Context) ([]domain.TravelOption, error)
	Get(ctx context.Context, travelID string) (*domain.TravelOption, error)
	Create(ctx context.Context, option *domain.TravelOption) error
	Delete(ctx context.Context, travelID string) error
}

type Cache interface {
	GetSearch(ctx context.Context, filter domain.SearchFilter) ([]domain.TravelOption, int64, error)
	SetSearch(ctx context.Context, gen int64, filter domain.SearchFilter, options []domain.TravelOption) error
	InvalidateCatalog(ctx context.Context) error
}

type TravelService struct {
	repo  repository.TravelRepository
	cache Cache
	now   func() time.Time
}

type TravelServiceOption func(*TravelService)

// WithClock sets the clock used for "today" and the future-only restriction.
func WithClock(now func() time.Time) TravelServiceOption {
	return func(s *TravelService) {
		s.now = now
	}
}

func NewTravelService(repo repository.TravelRepository, cache Cache, opts ...TravelServiceOption) *TravelService {
	s := &TravelService{repo: repo, cache: cache, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns upcoming options with free seats, ordered by departure.
func (s *TravelService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.TravelOption, error) {
	now := s.now()
	filter, err := s.normalize(filter, now)
	if err != nil {
		return nil, err
	}

	cacheable := s.cache != nil
	var gen int64
	if cacheable {
		var cached []domain.TravelOption
		cached, gen, err = s.cache.GetSearch(ctx, filter)
		switch {
		case err != nil:
			slog.Warn("search cache read failed", "error", err)
			cacheable = false
		case cached != nil:
			return stillMatching(cached, filter, now), nil
		}
	}

	options, err := s.repo.Search(ctx, filter, now)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []domain.TravelOption{}
	}
	if cacheable {
		if err := s.cache.SetSearch(ctx, gen, filter, options); err != nil {
			slog.Warn("search cache write failed", "error", err)
		}
	}
	return options, nil
}

func (s *TravelService) Count(ctx context.Context, filter domain.SearchFilter) (int, error) {
	now := s.now()
	filter, err := s.normalize(filter, now)
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, filter, now)
}

func (s *TravelService) Home(ctx context.Context) ([]domain.TravelOption, error) {
	return s.Search(ctx, domain.SearchFilter{Limit: HomeLimit})
}

// Get does not hide past or sold out options; the detail page shows them.
func (s *TravelService) Get(ctx context.Context, travelID string) (*domain.TravelOption, error) {
	travelID = strings.TrimSpace(travelID)
	if travelID == "" {
		return nil, domain.NotFoundError{Resource: "travel option"}
	}
	return s.repo.GetByTravelID(ctx, travelID)
}

func (s *TravelService) Create(ctx context.Context, option *domain.TravelOption) error {
	if err := option.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, option); err != nil {
		return err
	}
	slog.Info("travel option created", "travel_id", option.TravelID, "type", option.Type)
	s.invalidate(ctx)
	return nil
}

// Delete removes the option together with its bookings.
func (s *TravelService) Delete(ctx context.Context, travelID string) error {
	travelID = strings.TrimSpace(travelID)
	if travelID == "" {
		return domain.NotFoundError{Resource: "travel option"}
	}
	if err := s.repo.Delete(ctx, travelID); err != nil {
		return err
	}
	slog.Info("travel option deleted", "travel_id", travelID)
	s.invalidate(ctx)
	return nil
}

func (s *TravelService) normalize(filter domain.SearchFilter, now time.Time) (domain.SearchFilter, error) {
	filter.Source = strings.TrimSpace(filter.Source)
	filter.Destination = strings.TrimSpace(filter.Destination)
	filter.OnlyAvailable = true
	if filter.Type != "" && !filter.Type.Valid() {
		return filter, domain.ValidationError{Field: "travel_type", Msg: "must be one of flight, train, bus"}
	}
	if filter.DepartureDate != nil {
		loc := filter.DepartureDate.Location()
		y, m, d := now.In(loc).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, loc)
		if filter.DepartureDate.Before(today) {
			return filter, domain.ValidationError{Field: "departure_date", Msg: "must not be in the past"}
		}
	}
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

func (s *TravelService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		slog.Warn("failed to invalidate catalog cache", "error", err)
	}
}

// Cached pages can outlive a departure time, so they are filtered again.
func stillMatching(options []domain.TravelOption, filter domain.SearchFilter, now time.Time) []domain.TravelOption {
	out := make([]domain.TravelOption, 0, len(options))
	for i := range options {
		if filter.Matches(&options[i], now) {
			out = append(out, options[i])
		}
	}
	return out
}

var _ TravelUseCase = (*TravelService)(nil)
