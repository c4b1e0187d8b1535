package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/repository"
	"github.com/stretchr/testify/require"
)

func createBean(t *testing.T, repo *BeanRepository, name, created string) *bean.Bean {
	t.Helper()
	b := &bean.Bean{Name: name, CreatedDate: created}
	require.NoError(t, repo.Create(context.Background(), b))
	require.NotZero(t, b.ID)
	return b
}

func TestBeanRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBeanRepository(db)
	ctx := context.Background()

	b := &bean.Bean{
		Name:        "Ethiopia Yirgacheffe",
		Shop:        "Corner Roasters",
		Variety:     "Heirloom",
		RoastDate:   "2024-03-01",
		Notes:       "floral",
		CreatedDate: "2024-03-05",
	}
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, *b, *got)
}

func TestBeanRepository_OptionalFieldsStoredAsNull(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBeanRepository(db)

	b := createBean(t, repo, "Plain", "")

	var shop, roast any
	err := db.QueryRow(`SELECT shop, roast_date FROM beans WHERE id = ?`, b.ID).Scan(&shop, &roast)
	require.NoError(t, err)
	require.Nil(t, shop)
	require.Nil(t, roast)

	got, err := repo.Get(context.Background(), b.ID)
	require.NoError(t, err)
	require.Empty(t, got.Shop)
	require.Empty(t, got.RoastDate)
}

func TestBeanRepository_GetMissing(t *testing.T) {
	repo := NewBeanRepository(NewTestDB(t))

	_, err := repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBeanRepository_ListOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBeanRepository(db)
	ctx := context.Background()

	undated := createBean(t, repo, "Undated", "")
	older := createBean(t, repo, "Older", "2024-01-01")
	newerA := createBean(t, repo, "Newer A", "2024-02-01")
	newerB := createBean(t, repo, "Newer B", "2024-02-01")

	beans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, beans, 4)

	var ids []int64
	for _, b := range beans {
		ids = append(ids, b.ID)
	}
	require.Equal(t, []int64{newerB.ID, newerA.ID, older.ID, undated.ID}, ids)
}

func TestBeanRepository_ListEmpty(t *testing.T) {
	repo := NewBeanRepository(NewTestDB(t))

	beans, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, beans)
}

func TestBeanRepository_DeleteCascadesToRecords(t *testing.T) {
	db := NewTestDB(t)
	beans := NewBeanRepository(db)
	brews := NewBrewRepository(db)
	ctx := context.Background()

	doomed := createBean(t, beans, "Doomed", "2024-01-01")
	kept := createBean(t, beans, "Kept", "2024-01-01")
	createRecord(t, brews, doomed.ID, "2024-01-02")
	createRecord(t, brews, doomed.ID, "2024-01-03")
	survivor := createRecord(t, brews, kept.ID, "2024-01-04")

	require.NoError(t, beans.Delete(ctx, doomed.ID))

	_, err := beans.Get(ctx, doomed.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	var orphans int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM brewing_records WHERE bean_id = ?`, doomed.ID).Scan(&orphans))
	require.Zero(t, orphans)

	_, err = brews.Get(ctx, survivor.ID)
	require.NoError(t, err)
}

func TestBeanRepository_DeleteMissingIsNoop(t *testing.T) {
	repo := NewBeanRepository(NewTestDB(t))
	require.NoError(t, repo.Delete(context.Background(), 7))
}

func TestBeanRepository_LegacyDateColumns(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBeanRepository(db)

	_, err := db.Exec(`INSERT INTO beans (name, roast_date, created_date) VALUES ('Legacy', '2023-11-20', '2023-11-21 08:30:00')`)
	require.NoError(t, err)

	beans, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, beans, 1)
	require.Equal(t, "2023-11-20", beans[0].RoastDate)
	require.Equal(t, "2023-11-21", beans[0].CreatedDate)
}
