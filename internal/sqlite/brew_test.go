package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/repository"
	"github.com/stretchr/testify/require"
)

func createRecord(t *testing.T, repo *BrewRepository, beanID int64, date string) *brew.Record {
	t.Helper()
	rec := &brew.Record{
		BeanID:       beanID,
		BrewDate:     date,
		Grind:        brew.GrindClicks(24),
		CoffeeAmount: 20,
		Method:       brew.MethodDrip,
		Scores:       brew.Scores{Taste: 3, Aroma: 3, Body: 3, Acidity: 3, Overall: 3},
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	require.NotZero(t, rec.ID)
	return rec
}

func TestBrewRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	repo := NewBrewRepository(db)
	ctx := context.Background()

	b := createBean(t, beans, "Ethiopia Yirgacheffe", "2024-03-01")
	temp := 92
	adding := 60.0
	rec := &brew.Record{
		BeanID:       b.ID,
		BrewDate:     "2024-03-02",
		Grind:        brew.GrindClicks(22),
		CoffeeAmount: 20,
		WaterTemp:    &temp,
		BrewTime:     "2:45",
		Method:       brew.MethodDrip,
		Equipment:    brew.EquipmentPourOverDripper,
		AddingWater:  &adding,
		PourSchedule: pour.Schedule{
			{WaterAmount: 40, Time: "0:00"},
			{WaterAmount: 60, Time: "0:30"},
			{WaterAmount: 60, Time: "1:00"},
			{WaterAmount: 60, Time: "1:30"},
			{WaterAmount: 60, Time: "2:00"},
		},
		Scores:       brew.Scores{Taste: 4, Aroma: 5, Body: 3, Acidity: 4, Overall: 4},
		TastingNotes: "jasmine",
		Improvements: "grind finer",
	}
	require.NoError(t, repo.Create(ctx, rec))
	require.Equal(t, "Ethiopia Yirgacheffe", rec.BeanName)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, *rec, *got)

	ratio, ok := got.Ratio()
	require.True(t, ok)
	require.InDelta(t, 17.0, ratio, 1e-9)
}

func TestBrewRepository_CreateUnknownBean(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBrewRepository(db)

	rec := &brew.Record{BeanID: 999, Method: brew.MethodDrip}
	err := repo.Create(context.Background(), rec)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
	require.Zero(t, rec.ID)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM brewing_records`).Scan(&count))
	require.Zero(t, count)
}

func TestBrewRepository_AbsentAndEmptySchedules(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	repo := NewBrewRepository(db)
	ctx := context.Background()

	b := createBean(t, beans, "Kenya", "2024-01-01")
	rec := createRecord(t, repo, b.ID, "2024-01-02")

	var raw any
	require.NoError(t, db.QueryRow(`SELECT pour_schedule FROM brewing_records WHERE id = ?`, rec.ID).Scan(&raw))
	require.Nil(t, raw)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Nil(t, got.PourSchedule)
	require.False(t, got.ScheduleInvalid)
	_, ok := got.Ratio()
	require.False(t, ok)

	_, err = db.Exec(`UPDATE brewing_records SET pour_schedule = '[]' WHERE id = ?`, rec.ID)
	require.NoError(t, err)
	got, err = repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PourSchedule)
	require.Empty(t, got.PourSchedule)
}

func TestBrewRepository_LegacyRow(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	repo := NewBrewRepository(db)

	b := createBean(t, beans, "Old Bean", "2023-01-01")
	_, err := db.Exec(`
		INSERT INTO brewing_records (bean_id, brew_date, grind_size, coffee_amount, water_amount, water_temp, method, equipment, pour_schedule, overall_score)
		VALUES (?, '2023-01-02', 'medium fine', 18, 250, 91.0, '드립', '하리오 V60', 'not json', 4)`, b.ID)
	require.NoError(t, err)

	recs, err := repo.List(context.Background(), brew.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	require.Equal(t, brew.Grind{Legacy: "medium fine"}, got.Grind)
	require.Equal(t, brew.MethodDrip, got.Method)
	require.Equal(t, brew.EquipmentPourOverDripper, got.Equipment)
	require.NotNil(t, got.WaterTemp)
	require.Equal(t, 91, *got.WaterTemp)
	require.True(t, got.ScheduleInvalid)
	require.Nil(t, got.PourSchedule)
	require.Equal(t, 4, got.Scores.Overall)
	require.Zero(t, got.Scores.Taste)
	_, ok := got.Ratio()
	require.False(t, ok)
}

func TestBrewRepository_ZeroGrindSurvivesRead(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	repo := NewBrewRepository(db)

	b := createBean(t, beans, "Old Bean", "2023-01-01")
	_, err := db.Exec(`INSERT INTO brewing_records (bean_id, brew_date, grind_size, method) VALUES (?, '2023-01-02', '0', 'drip')`, b.ID)
	require.NoError(t, err)

	recs, err := repo.List(context.Background(), brew.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, brew.Grind{Legacy: "0"}, recs[0].Grind)
}

func TestBrewRepository_ListOrderAndFilter(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	repo := NewBrewRepository(db)
	ctx := context.Background()

	a := createBean(t, beans, "A", "2024-01-01")
	b := createBean(t, beans, "B", "2024-01-01")

	undated := createRecord(t, repo, a.ID, "")
	old := createRecord(t, repo, a.ID, "2024-01-05")
	sameDayFirst := createRecord(t, repo, b.ID, "2024-02-01")
	sameDaySecond := createRecord(t, repo, a.ID, "2024-02-01")

	recs, err := repo.List(ctx, brew.ListOptions{})
	require.NoError(t, err)
	var ids []int64
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []int64{sameDaySecond.ID, sameDayFirst.ID, old.ID, undated.ID}, ids)

	recs, err = repo.List(ctx, brew.ListOptions{BeanID: &b.ID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, sameDayFirst.ID, recs[0].ID)
	require.Equal(t, "B", recs[0].BeanName)
}

func TestBrewRepository_GetMissing(t *testing.T) {
	repo := NewBrewRepository(NewTestDB(t))

	_, err := repo.Get(context.Background(), 1)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBrewRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	repo := NewBrewRepository(db)
	ctx := context.Background()

	b := createBean(t, beans, "A", "2024-01-01")
	rec := createRecord(t, repo, b.ID, "2024-01-02")

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err := repo.Get(ctx, rec.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err = beans.Get(ctx, b.ID)
	require.NoError(t, err, "deleting a record leaves its bean")
}
