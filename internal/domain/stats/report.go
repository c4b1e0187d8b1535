package stats

import (
	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/day"
)

// Report bundles every statistic shown on the statistics screen.
type Report struct {
	TotalRecords int                `json:"total_records"`
	Overall      Mean               `json:"overall"`
	ByMethod     []Group            `json:"by_method"`
	ByEquipment  []Group            `json:"by_equipment"`
	ByBean       []Group            `json:"by_bean"`
	CountByBean  []Count            `json:"count_by_bean"`
	Distribution [brew.MaxScore]int `json:"distribution"`
	TimeSeries   []Series           `json:"time_series"`
}

// BuildReport computes a Report from a record snapshot.
func BuildReport(recs []brew.Record) Report {
	return Report{
		TotalRecords: len(recs),
		Overall:      OverallMean(recs),
		ByMethod:     MeanByMethod(recs),
		ByEquipment:  MeanByEquipment(recs),
		ByBean:       MeanByBean(recs),
		CountByBean:  CountByBean(recs),
		Distribution: Distribution(recs),
		TimeSeries:   TimeSeries(recs),
	}
}

// BeanCard summarizes one bean on the home screen.
type BeanCard struct {
	Bean      bean.Bean `json:"bean"`
	BrewCount int       `json:"brew_count"`
	LastBrew  string    `json:"last_brew,omitempty"`
}

// Overview is the home screen summary.
type Overview struct {
	BeanCount int        `json:"bean_count"`
	BrewCount int        `json:"brew_count"`
	Overall   Mean       `json:"overall"`
	Beans     []BeanCard `json:"beans"`
}

// BuildOverview summarizes beans in the order given.
func BuildOverview(beans []bean.Bean, recs []brew.Record) Overview {
	cards := make([]BeanCard, len(beans))
	index := make(map[int64]int, len(beans))
	for i, b := range beans {
		cards[i] = BeanCard{Bean: b}
		index[b.ID] = i
	}

	for _, rec := range recs {
		i, ok := index[rec.BeanID]
		if !ok {
			continue
		}
		cards[i].BrewCount++
		at, ok := day.Parse(rec.BrewDate)
		if !ok {
			continue
		}
		if last, ok := day.Parse(cards[i].LastBrew); !ok || at.After(last) {
			cards[i].LastBrew = day.Format(at)
		}
	}

	return Overview{
		BeanCount: len(beans),
		BrewCount: len(recs),
		Overall:   OverallMean(recs),
		Beans:     cards,
	}
}
