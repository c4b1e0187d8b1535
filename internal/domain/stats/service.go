package stats

import (
	"context"
	"fmt"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
)

// BeanLister lists beans. bean.Service satisfies it.
type BeanLister interface {
	List(ctx context.Context) ([]bean.Bean, error)
}

// RecordLister lists brewing records. brew.Service satisfies it.
type RecordLister interface {
	List(ctx context.Context, opts brew.ListOptions) ([]brew.Record, error)
}

// Service loads snapshots and computes statistics over them.
type Service struct {
	beans   BeanLister
	records RecordLister
}

// NewService creates a new stats service.
func NewService(beans BeanLister, records RecordLister) *Service {
	return &Service{beans: beans, records: records}
}

// Report computes statistics over every record.
func (s *Service) Report(ctx context.Context) (Report, error) {
	recs, err := s.records.List(ctx, brew.ListOptions{})
	if err != nil {
		return Report{}, fmt.Errorf("loading records: %w", err)
	}
	return BuildReport(recs), nil
}

// Overview computes the home screen summary.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	beans, err := s.beans.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("loading beans: %w", err)
	}
	recs, err := s.records.List(ctx, brew.ListOptions{})
	if err != nil {
		return Overview{}, fmt.Errorf("loading records: %w", err)
	}
	return BuildOverview(beans, recs), nil
}
