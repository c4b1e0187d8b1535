package bean

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/brewlog/internal/domain/day"
	"github.com/rpggio/brewlog/internal/repository"
)

// Service handles bean operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new bean service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for created dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateRequest defines bean registration inputs. Only Name is required.
// Create trims surrounding whitespace from every text field, so a stored bean
// equals its request once the request's fields are trimmed.
type CreateRequest struct {
	Name      string
	Shop      string
	Variety   string
	RoastDate string
	Notes     string
}

// Create registers a new bean dated today.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Bean, error) {
	roastDate, err := ValidateCreateInput(req)
	if err != nil {
		return nil, err
	}

	b := &Bean{
		Name:        strings.TrimSpace(req.Name),
		Shop:        strings.TrimSpace(req.Shop),
		Variety:     strings.TrimSpace(req.Variety),
		RoastDate:   roastDate,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedDate: day.Format(s.now()),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating bean: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("bean registered", "bean_id", b.ID, "name", b.Name)
	}
	return b, nil
}

// Get fetches a bean by ID. A missing bean is reported with found=false.
func (s *Service) Get(ctx context.Context, id int64) (*Bean, bool, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting bean: %w", err)
	}
	return b, true, nil
}

// List returns beans, most recently created first.
func (s *Service) List(ctx context.Context) ([]Bean, error) {
	beans, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing beans: %w", err)
	}
	return beans, nil
}

// Delete removes a bean together with its brewing records. Deleting an
// unknown bean is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting bean: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("bean deleted", "bean_id", id)
	}
	return nil
}
