package bean_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/repository"
	"github.com/rpggio/brewlog/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
}

func TestBeanService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BeanRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(b *bean.Bean) bool {
		return b.Name == "Ethiopia Yirgacheffe" && b.Shop == "Corner" && b.CreatedDate == "2024-03-05" && b.RoastDate == "2024-03-01"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*bean.Bean).ID = 7
	}).Return(nil)

	svc := bean.NewService(repo, nil).WithClock(fixedClock)
	b, err := svc.Create(ctx, bean.CreateRequest{
		Name:      "  Ethiopia Yirgacheffe ",
		Shop:      "Corner",
		RoastDate: "2024-03-01",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), b.ID)
	repo.AssertExpectations(t)
}

func TestBeanService_CreateTrimsEveryTextField(t *testing.T) {
	ctx := context.Background()

	want := bean.Bean{
		ID:          1,
		Name:        "Guji",
		Shop:        "Corner",
		Variety:     "Heirloom",
		RoastDate:   "2024-03-01",
		Notes:       "peach, jasmine",
		CreatedDate: "2024-03-05",
	}
	repo := &mocks.BeanRepository{}
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*bean.Bean).ID = 1
	}).Return(nil)

	b, err := bean.NewService(repo, nil).WithClock(fixedClock).Create(ctx, bean.CreateRequest{
		Name:      " Guji",
		Shop:      "Corner\t",
		Variety:   " Heirloom ",
		RoastDate: "2024-03-01",
		Notes:     "\npeach, jasmine  ",
	})
	require.NoError(t, err)
	require.Equal(t, want, *b)
}

func TestBeanService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.BeanRepository{}
	svc := bean.NewService(repo, nil)

	_, err := svc.Create(ctx, bean.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, bean.ErrInvalidInput)

	_, err = svc.Create(ctx, bean.CreateRequest{Name: "Kenya", RoastDate: "yesterday"})
	require.ErrorIs(t, err, bean.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBeanService_GetMissing(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BeanRepository{}
	repo.On("Get", ctx, int64(3)).Return((*bean.Bean)(nil), repository.ErrNotFound)

	b, found, err := bean.NewService(repo, nil).Get(ctx, 3)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, b)
}

func TestBeanService_GetError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")

	repo := &mocks.BeanRepository{}
	repo.On("Get", ctx, int64(3)).Return((*bean.Bean)(nil), boom)

	_, _, err := bean.NewService(repo, nil).Get(ctx, 3)
	require.ErrorIs(t, err, boom)
}

func TestBeanService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.BeanRepository{}
	repo.On("Delete", ctx, int64(4)).Return(nil)

	require.NoError(t, bean.NewService(repo, nil).Delete(ctx, 4))
	repo.AssertExpectations(t)
}
