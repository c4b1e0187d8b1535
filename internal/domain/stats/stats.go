// Package stats derives brewing statistics from a snapshot of records. Every
// function is pure and tolerates legacy rows: a zero score means "not
// recorded" and never counts towards a mean.
package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/day"
)

// Mean is an average overall score. Valid is false when no scored record
// contributed, so an empty set never reports a number.
type Mean struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Valid bool    `json:"valid"`
}

// String renders the mean with one decimal, or "-" when there is no data.
func (m Mean) String() string {
	if !m.Valid {
		return "-"
	}
	return strconv.FormatFloat(m.Value, 'f', 1, 64)
}

type accumulator struct {
	sum   int
	count int
}

func (a *accumulator) add(score int) {
	if score < brew.MinScore || score > brew.MaxScore {
		return
	}
	a.sum += score
	a.count++
}

func (a accumulator) mean() Mean {
	if a.count == 0 {
		return Mean{}
	}
	return Mean{Value: float64(a.sum) / float64(a.count), Count: a.count, Valid: true}
}

// Group is the mean overall score of the records sharing Key. Records counts
// every record in the group, scored or not.
type Group struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
	Mean    Mean   `json:"mean"`
}

// OverallMean averages the overall score of every record.
func OverallMean(recs []brew.Record) Mean {
	var acc accumulator
	for _, rec := range recs {
		acc.add(rec.Scores.Overall)
	}
	return acc.mean()
}

// MeanByMethod groups by brewing method. Records without a method are skipped.
func MeanByMethod(recs []brew.Record) []Group {
	return groupBy(recs, func(rec brew.Record) string { return string(rec.Method) })
}

// MeanByEquipment groups by equipment, over records that name one.
func MeanByEquipment(recs []brew.Record) []Group {
	return groupBy(recs, func(rec brew.Record) string { return string(rec.Equipment) })
}

// MeanByBean groups by bean name.
func MeanByBean(recs []brew.Record) []Group {
	return groupBy(recs, func(rec brew.Record) string { return rec.BeanName })
}

// Count is a number of records sharing Key.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountByBean counts records per bean name, including unscored ones.
func CountByBean(recs []brew.Record) []Count {
	groups := MeanByBean(recs)
	counts := make([]Count, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, Count{Key: g.Key, Count: g.Records})
	}
	return counts
}

// groupBy returns groups sorted by key. Empty keys are dropped.
func groupBy(recs []brew.Record, key func(brew.Record) string) []Group {
	accs := make(map[string]*accumulator)
	records := make(map[string]int)
	for _, rec := range recs {
		k := key(rec)
		if k == "" {
			continue
		}
		acc, ok := accs[k]
		if !ok {
			acc = &accumulator{}
			accs[k] = acc
		}
		acc.add(rec.Scores.Overall)
		records[k]++
	}

	groups := make([]Group, 0, len(accs))
	for k, acc := range accs {
		groups = append(groups, Group{Key: k, Records: records[k], Mean: acc.mean()})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// Distribution counts overall scores; index 0 holds the number of 1s.
func Distribution(recs []brew.Record) [brew.MaxScore]int {
	var dist [brew.MaxScore]int
	for _, rec := range recs {
		s := rec.Scores.Overall
		if s >= brew.MinScore && s <= brew.MaxScore {
			dist[s-1]++
		}
	}
	return dist
}

// Point is one brew on a bean's timeline.
type Point struct {
	Date     string `json:"date"`
	Overall  int    `json:"overall"`
	RecordID int64  `json:"record_id"`
}

// Series is the overall score of one bean over time.
type Series struct {
	BeanName string  `json:"bean_name"`
	Points   []Point `json:"points"`
}

// TimeSeries builds one series per bean, ordered by bean name, each sorted by
// brew date. Records with a missing or unparsable date, or no overall score,
// are left out of this view only.
func TimeSeries(recs []brew.Record) []Series {
	type dated struct {
		at    time.Time
		point Point
	}
	byBean := make(map[string][]dated)
	for _, rec := range recs {
		at, ok := day.Parse(rec.BrewDate)
		if !ok || rec.Scores.Overall < brew.MinScore || rec.Scores.Overall > brew.MaxScore {
			continue
		}
		byBean[rec.BeanName] = append(byBean[rec.BeanName], dated{
			at:    at,
			point: Point{Date: day.Format(at), Overall: rec.Scores.Overall, RecordID: rec.ID},
		})
	}

	series := make([]Series, 0, len(byBean))
	for name, points := range byBean {
		sort.Slice(points, func(i, j int) bool {
			if points[i].at.Equal(points[j].at) {
				return points[i].point.RecordID < points[j].point.RecordID
			}
			return points[i].at.Before(points[j].at)
		})
		s := Series{BeanName: name, Points: make([]Point, len(points))}
		for i, p := range points {
			s.Points[i] = p.point
		}
		series = append(series, s)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].BeanName < series[j].BeanName })
	return series
}
