package mocks

import (
	"context"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/stretchr/testify/mock"
)

// BeanRepository is a mock for bean.Repository.
type BeanRepository struct {
	mock.Mock
}

func (m *BeanRepository) Create(ctx context.Context, b *bean.Bean) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BeanRepository) Get(ctx context.Context, id int64) (*bean.Bean, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*bean.Bean); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeanRepository) List(ctx context.Context) ([]bean.Bean, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]bean.Bean); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeanRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// BrewRepository is a mock for brew.Repository.
type BrewRepository struct {
	mock.Mock
}

func (m *BrewRepository) Create(ctx context.Context, rec *brew.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *BrewRepository) Get(ctx context.Context, id int64) (*brew.Record, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*brew.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BrewRepository) List(ctx context.Context, opts brew.ListOptions) ([]brew.Record, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]brew.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BrewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
