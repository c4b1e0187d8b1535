package brew_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/repository"
	"github.com/rpggio/brewlog/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRequest() brew.CreateRequest {
	return brew.CreateRequest{
		BeanID:       1,
		Grind:        brew.GrindClicks(24),
		CoffeeAmount: 20,
		Method:       brew.MethodDrip,
		PourSchedule: pour.Schedule{{WaterAmount: 40, Time: "0:00"}, {WaterAmount: 60, Time: "0:30"}},
		Scores:       brew.Scores{Taste: 4, Aroma: 4, Body: 3, Acidity: 4, Overall: 4},
	}
}

func TestBrewService_CreateDefaultsDate(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BrewRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(r *brew.Record) bool {
		return r.BrewDate == "2024-03-05" && len(r.PourSchedule) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*brew.Record).ID = 11
	}).Return(nil)

	svc := brew.NewService(repo, nil).WithClock(func() time.Time {
		return time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)
	})
	rec, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.Equal(t, int64(11), rec.ID)

	ratio, ok := rec.Ratio()
	require.True(t, ok)
	require.InDelta(t, 5.0, ratio, 1e-9)
	repo.AssertExpectations(t)
}

func TestBrewService_CreateEmptyScheduleStoredAsAbsent(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BrewRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(r *brew.Record) bool {
		return r.PourSchedule == nil
	})).Return(nil)

	req := validRequest()
	req.PourSchedule = pour.Schedule{}
	_, err := brew.NewService(repo, nil).Create(ctx, req)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBrewService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	temp := 80
	negative := -5.0
	oversized := 1.7e308

	cases := map[string]func(*brew.CreateRequest){
		"missing bean":        func(r *brew.CreateRequest) { r.BeanID = 0 },
		"score too high":      func(r *brew.CreateRequest) { r.Scores.Taste = 6 },
		"score too low":       func(r *brew.CreateRequest) { r.Scores.Overall = 0 },
		"negative coffee":     func(r *brew.CreateRequest) { r.CoffeeAmount = -1 },
		"negative adding":     func(r *brew.CreateRequest) { r.AddingWater = &negative },
		"negative pour":       func(r *brew.CreateRequest) { r.PourSchedule[1].WaterAmount = -60 },
		"oversized pour":      func(r *brew.CreateRequest) { r.PourSchedule[1].WaterAmount = oversized },
		"oversized coffee":    func(r *brew.CreateRequest) { r.CoffeeAmount = oversized },
		"oversized adding":    func(r *brew.CreateRequest) { r.AddingWater = &oversized },
		"grind out of range":  func(r *brew.CreateRequest) { r.Grind = brew.GrindClicks(51) },
		"temperature too low": func(r *brew.CreateRequest) { r.WaterTemp = &temp },
		"unknown method":      func(r *brew.CreateRequest) { r.Method = "siphon" },
		"missing method":      func(r *brew.CreateRequest) { r.Method = "" },
		"unknown equipment":   func(r *brew.CreateRequest) { r.Equipment = "chemex" },
		"bad date":            func(r *brew.CreateRequest) { r.BrewDate = "03/05/2024" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mocks.BrewRepository{}
			req := validRequest()
			mutate(&req)

			_, err := brew.NewService(repo, nil).Create(ctx, req)
			require.ErrorIs(t, err, brew.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestBrewService_CreateUnknownBean(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BrewRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := brew.NewService(repo, nil).Create(ctx, validRequest())
	require.ErrorIs(t, err, brew.ErrUnknownBean)
	require.ErrorIs(t, err, brew.ErrInvalidInput)
}

func TestBrewService_GetMissing(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BrewRepository{}
	repo.On("Get", ctx, int64(9)).Return((*brew.Record)(nil), repository.ErrNotFound)

	rec, found, err := brew.NewService(repo, nil).Get(ctx, 9)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, rec)
}

func TestBrewService_ListFiltersByBean(t *testing.T) {
	ctx := context.Background()
	beanID := int64(2)

	repo := &mocks.BrewRepository{}
	repo.On("List", ctx, brew.ListOptions{BeanID: &beanID}).Return([]brew.Record{{ID: 1, BeanID: 2}}, nil)

	recs, err := brew.NewService(repo, nil).List(ctx, brew.ListOptions{BeanID: &beanID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestRecordRatio_AbsentWithoutSchedule(t *testing.T) {
	rec := brew.Record{CoffeeAmount: 20}
	_, ok := rec.Ratio()
	require.False(t, ok)

	rec.PourSchedule = pour.Schedule{{WaterAmount: 300, Time: "0:00"}}
	rec.CoffeeAmount = 0
	_, ok = rec.Ratio()
	require.False(t, ok)
}
