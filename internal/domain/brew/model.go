package brew

import (
	"github.com/rpggio/brewlog/internal/domain/pour"
)

// Scores are the five sensory ratings of a brew, each 1..5. Zero means the
// legacy row had no value.
type Scores struct {
	Taste   int `json:"taste"`
	Aroma   int `json:"aroma"`
	Body    int `json:"body"`
	Acidity int `json:"acidity"`
	Overall int `json:"overall"`
}

// Record is one logged brewing session.
type Record struct {
	ID              int64         `json:"id"`
	BeanID          int64         `json:"bean_id"`
	BeanName        string        `json:"bean_name,omitempty"`
	BrewDate        string        `json:"brew_date,omitempty"`
	Grind           Grind         `json:"grind"`
	CoffeeAmount    float64       `json:"coffee_amount"`
	WaterTemp       *int          `json:"water_temp,omitempty"`
	BrewTime        string        `json:"brew_time,omitempty"`
	Method          Method        `json:"method,omitempty"`
	Equipment       Equipment     `json:"equipment,omitempty"`
	AddingWater     *float64      `json:"adding_water,omitempty"`
	PourSchedule    pour.Schedule `json:"pour_schedule,omitempty"`
	ScheduleInvalid bool          `json:"schedule_invalid,omitempty"`
	Scores          Scores        `json:"scores"`
	TastingNotes    string        `json:"tasting_notes,omitempty"`
	Improvements    string        `json:"improvements,omitempty"`
}

// TotalPouredWater sums the pour schedule.
func (r Record) TotalPouredWater() float64 {
	return pour.TotalPouredWater(r.PourSchedule)
}

// TotalWater is the poured water plus the adding water.
func (r Record) TotalWater() float64 {
	adding := 0.0
	if r.AddingWater != nil {
		adding = *r.AddingWater
	}
	return pour.TotalWater(r.PourSchedule, adding)
}

// Ratio returns the brew ratio. Records without a readable pour schedule
// have no ratio, matching how they were always displayed.
func (r Record) Ratio() (float64, bool) {
	if r.PourSchedule == nil || r.ScheduleInvalid {
		return 0, false
	}
	return pour.BrewRatio(r.TotalWater(), r.CoffeeAmount)
}

// ListOptions provides filtering options for listing records.
type ListOptions struct {
	BeanID *int64
}
