package brew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/brewlog/internal/domain/day"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/repository"
)

// Service handles brewing record business logic.
type Service struct {
	records Repository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new brewing record service.
func NewService(records Repository, logger *slog.Logger) *Service {
	return &Service{records: records, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for default brew dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateRequest describes a brewing session to log. An empty BrewDate means today.
type CreateRequest struct {
	BeanID       int64
	BrewDate     string
	Grind        Grind
	CoffeeAmount float64
	WaterTemp    *int
	BrewTime     string
	Method       Method
	Equipment    Equipment
	AddingWater  *float64
	PourSchedule pour.Schedule
	Scores       Scores
	TastingNotes string
	Improvements string
}

// Create validates and stores a new record.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	brewDate, _ := day.Normalize(req.BrewDate)
	if brewDate == "" {
		brewDate = day.Format(s.now())
	}

	var schedule pour.Schedule
	if len(req.PourSchedule) > 0 {
		schedule = append(pour.Schedule(nil), req.PourSchedule...)
	}

	rec := &Record{
		BeanID:       req.BeanID,
		BrewDate:     brewDate,
		Grind:        req.Grind,
		CoffeeAmount: req.CoffeeAmount,
		WaterTemp:    req.WaterTemp,
		BrewTime:     req.BrewTime,
		Method:       req.Method,
		Equipment:    req.Equipment,
		AddingWater:  req.AddingWater,
		PourSchedule: schedule,
		Scores:       req.Scores,
		TastingNotes: req.TastingNotes,
		Improvements: req.Improvements,
	}

	if err := s.records.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownBean, req.BeanID)
		}
		return nil, fmt.Errorf("creating record: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("brew logged", "record_id", rec.ID, "bean_id", rec.BeanID, "overall", rec.Scores.Overall)
	}
	return rec, nil
}

// Get fetches a record by ID. A missing record is reported with found=false.
func (s *Service) Get(ctx context.Context, id int64) (*Record, bool, error) {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting record: %w", err)
	}
	s.warnInvalid([]Record{*rec})
	return rec, true, nil
}

// List returns records, newest brew date first, optionally for one bean.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	recs, err := s.records.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	s.warnInvalid(recs)
	return recs, nil
}

// Delete removes a record. Deleting an unknown record is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("brew deleted", "record_id", id)
	}
	return nil
}

func (s *Service) warnInvalid(recs []Record) {
	if s.logger == nil {
		return
	}
	for _, rec := range recs {
		if rec.ScheduleInvalid {
			s.logger.Warn("unreadable pour schedule", "record_id", rec.ID)
		}
	}
}
