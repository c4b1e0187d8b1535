package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/stats"
	"github.com/stretchr/testify/require"
)

func rec(id int64, beanID int64, beanName, date string, method brew.Method, equipment brew.Equipment, overall int) brew.Record {
	return brew.Record{
		ID:        id,
		BeanID:    beanID,
		BeanName:  beanName,
		BrewDate:  date,
		Method:    method,
		Equipment: equipment,
		Scores:    brew.Scores{Overall: overall},
	}
}

func sample() []brew.Record {
	return []brew.Record{
		rec(1, 1, "Kenya", "2024-01-03", brew.MethodDrip, brew.EquipmentPourOverDripper, 4),
		rec(2, 1, "Kenya", "2024-01-01", brew.MethodDrip, "", 2),
		rec(3, 2, "Brazil", "2024-01-02", brew.MethodAeroPress, brew.EquipmentAeroPress, 5),
		rec(4, 2, "Brazil", "not a date", brew.MethodAeroPress, brew.EquipmentAeroPress, 3),
		rec(5, 2, "Brazil", "", brew.MethodDrip, "", 0),
	}
}

func TestEmptyInputHasNoData(t *testing.T) {
	require.Equal(t, stats.Mean{}, stats.OverallMean(nil))
	require.False(t, stats.OverallMean(nil).Valid)
	require.Equal(t, "-", stats.OverallMean(nil).String())
	require.Empty(t, stats.MeanByMethod(nil))
	require.Empty(t, stats.MeanByEquipment(nil))
	require.Empty(t, stats.MeanByBean(nil))
	require.Empty(t, stats.CountByBean(nil))
	require.Empty(t, stats.TimeSeries(nil))
	require.Equal(t, [5]int{}, stats.Distribution(nil))

	report := stats.BuildReport(nil)
	require.Zero(t, report.TotalRecords)
	require.False(t, report.Overall.Valid)
}

func TestOverallMean_SkipsUnscored(t *testing.T) {
	m := stats.OverallMean(sample())
	require.True(t, m.Valid)
	require.Equal(t, 4, m.Count)
	require.InDelta(t, 3.5, m.Value, 1e-9)
	require.Equal(t, "3.5", m.String())
}

func TestMeanByMethod(t *testing.T) {
	groups := stats.MeanByMethod(sample())
	require.Len(t, groups, 2)

	require.Equal(t, "aeropress", groups[0].Key)
	require.Equal(t, 2, groups[0].Records)
	require.InDelta(t, 4.0, groups[0].Mean.Value, 1e-9)

	require.Equal(t, "drip", groups[1].Key)
	require.Equal(t, 3, groups[1].Records)
	require.Equal(t, 2, groups[1].Mean.Count)
	require.InDelta(t, 3.0, groups[1].Mean.Value, 1e-9)
}

func TestMeanByEquipment_OnlyRecordsWithEquipment(t *testing.T) {
	groups := stats.MeanByEquipment(sample())
	require.Len(t, groups, 2)
	require.Equal(t, "aeropress", groups[0].Key)
	require.Equal(t, 2, groups[0].Records)
	require.Equal(t, "pour-over-dripper", groups[1].Key)
	require.Equal(t, 1, groups[1].Records)
	require.InDelta(t, 4.0, groups[1].Mean.Value, 1e-9)
}

func TestGroupWithOnlyUnscoredRecordsHasNoMean(t *testing.T) {
	groups := stats.MeanByBean([]brew.Record{rec(1, 1, "Legacy", "2023-01-01", brew.MethodDrip, "", 0)})
	require.Len(t, groups, 1)
	require.Equal(t, 1, groups[0].Records)
	require.False(t, groups[0].Mean.Valid)
}

func TestCountByBean(t *testing.T) {
	counts := stats.CountByBean(sample())
	require.Equal(t, []stats.Count{{Key: "Brazil", Count: 3}, {Key: "Kenya", Count: 2}}, counts)
}

func TestDistribution(t *testing.T) {
	require.Equal(t, [5]int{0, 1, 1, 1, 1}, stats.Distribution(sample()))
}

func TestTimeSeries_SortsAndSkipsBadDates(t *testing.T) {
	series := stats.TimeSeries(sample())
	require.Len(t, series, 2)

	require.Equal(t, "Brazil", series[0].BeanName)
	require.Equal(t, []stats.Point{{Date: "2024-01-02", Overall: 5, RecordID: 3}}, series[0].Points)

	require.Equal(t, "Kenya", series[1].BeanName)
	require.Equal(t, []stats.Point{
		{Date: "2024-01-01", Overall: 2, RecordID: 2},
		{Date: "2024-01-03", Overall: 4, RecordID: 1},
	}, series[1].Points)
}

func TestBuildReport_CountsIncludeUndatedRecords(t *testing.T) {
	report := stats.BuildReport(sample())
	require.Equal(t, 5, report.TotalRecords)
	require.Len(t, report.ByBean, 2)
	require.Equal(t, 3, report.CountByBean[0].Count)
}

func TestBuildOverview(t *testing.T) {
	beans := []bean.Bean{{ID: 2, Name: "Brazil"}, {ID: 1, Name: "Kenya"}, {ID: 3, Name: "Unbrewed"}}
	ov := stats.BuildOverview(beans, sample())

	require.Equal(t, 3, ov.BeanCount)
	require.Equal(t, 5, ov.BrewCount)
	require.InDelta(t, 3.5, ov.Overall.Value, 1e-9)
	require.Len(t, ov.Beans, 3)

	require.Equal(t, "Brazil", ov.Beans[0].Bean.Name)
	require.Equal(t, 3, ov.Beans[0].BrewCount)
	require.Equal(t, "2024-01-02", ov.Beans[0].LastBrew)

	require.Equal(t, 2, ov.Beans[1].BrewCount)
	require.Equal(t, "2024-01-03", ov.Beans[1].LastBrew)

	require.Zero(t, ov.Beans[2].BrewCount)
	require.Empty(t, ov.Beans[2].LastBrew)
}

type beanLister []bean.Bean

func (l beanLister) List(context.Context) ([]bean.Bean, error) { return l, nil }

type recordLister struct {
	recs []brew.Record
	err  error
}

func (l recordLister) List(context.Context, brew.ListOptions) ([]brew.Record, error) {
	return l.recs, l.err
}

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := stats.NewService(beanLister{{ID: 1, Name: "Kenya"}}, recordLister{recs: sample()})

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, report.TotalRecords)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, ov.BeanCount)
	require.Equal(t, 2, ov.Beans[0].BrewCount)

	boom := errors.New("boom")
	_, err = stats.NewService(beanLister{}, recordLister{err: boom}).Report(ctx)
	require.ErrorIs(t, err, boom)
}
