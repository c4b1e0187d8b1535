package mcp

import (
	"time"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/domain/session"
)

type CreateBeanParams struct {
	Name      string `json:"name"`
	Shop      string `json:"shop,omitempty"`
	Variety   string `json:"variety,omitempty"`
	RoastDate string `json:"roast_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type IDParams struct {
	ID int64 `json:"id"`
}

type LogBrewParams struct {
	BeanID       *int64        `json:"bean_id,omitempty"`
	BrewDate     string        `json:"brew_date,omitempty"`
	Grind        brew.Grind    `json:"grind,omitempty"`
	CoffeeAmount *float64      `json:"coffee_amount,omitempty"`
	WaterTemp    *int          `json:"water_temp,omitempty"`
	BrewTime     string        `json:"brew_time,omitempty"`
	Method       string        `json:"method"`
	Equipment    string        `json:"equipment,omitempty"`
	AddingWater  *float64      `json:"adding_water,omitempty"`
	PourSchedule pour.Schedule `json:"pour_schedule,omitempty"`
	Scores       brew.Scores   `json:"scores"`
	TastingNotes string        `json:"tasting_notes,omitempty"`
	Improvements string        `json:"improvements,omitempty"`
}

type ListBrewsParams struct {
	BeanID *int64 `json:"bean_id,omitempty"`
}

type ConfirmDeleteParams struct {
	Token string `json:"token"`
}

type SelectBeanParams struct {
	BeanID int64 `json:"bean_id"`
}

type AddPourStepParams struct {
	WaterAmount *float64 `json:"water_amount,omitempty"`
}

type EditPourStepParams struct {
	Step        int     `json:"step"`
	WaterAmount float64 `json:"water_amount"`
	Time        string  `json:"time"`
}

type RemovePourStepParams struct {
	Step int `json:"step"`
}

type CalculateRatioParams struct {
	CoffeeAmount float64       `json:"coffee_amount"`
	AddingWater  float64       `json:"adding_water,omitempty"`
	PourSchedule pour.Schedule `json:"pour_schedule,omitempty"`
}

type BeanListResponse struct {
	Beans []bean.Bean `json:"beans"`
}

// BrewResponse is a record plus the values derived from its pour schedule.
// Ratio fields are omitted when the ratio is undefined.
type BrewResponse struct {
	brew.Record
	TotalPoured float64  `json:"total_poured"`
	TotalWater  float64  `json:"total_water"`
	Ratio       *float64 `json:"ratio,omitempty"`
	RatioText   string   `json:"ratio_text,omitempty"`
	Preview     string   `json:"pour_preview,omitempty"`
}

type BrewListResponse struct {
	Brews []BrewResponse `json:"brews"`
}

type DeleteRequestResponse struct {
	confirm.Token
	Message string `json:"message"`
}

type DeleteConfirmResponse struct {
	Deleted  confirm.Kind `json:"deleted"`
	TargetID int64        `json:"target_id"`
	Label    string       `json:"label,omitempty"`
}

type DraftResponse struct {
	SessionID      string        `json:"session_id"`
	SelectedBeanID *int64        `json:"selected_bean_id,omitempty"`
	Steps          pour.Schedule `json:"steps"`
	TotalPoured    float64       `json:"total_poured"`
	NextTime       string        `json:"next_time"`
	Preview        string        `json:"preview"`
	LastActivity   time.Time     `json:"last_activity"`
}

type RatioResponse struct {
	TotalPoured float64  `json:"total_poured"`
	TotalWater  float64  `json:"total_water"`
	Ratio       *float64 `json:"ratio,omitempty"`
	RatioText   string   `json:"ratio_text,omitempty"`
	Preview     string   `json:"preview,omitempty"`
}

// NewBrewResponse derives the display values of rec.
func NewBrewResponse(rec brew.Record) BrewResponse {
	resp := BrewResponse{
		Record:      rec,
		TotalPoured: rec.TotalPouredWater(),
		TotalWater:  rec.TotalWater(),
		Preview:     pour.Preview(rec.PourSchedule),
	}
	if ratio, ok := rec.Ratio(); ok {
		resp.Ratio = &ratio
		resp.RatioText = pour.FormatRatio(ratio)
	}
	return resp
}

// NewRatio computes totals and the ratio for an ad-hoc schedule.
func NewRatio(steps pour.Schedule, coffee, adding float64) RatioResponse {
	resp := RatioResponse{
		TotalPoured: pour.TotalPouredWater(steps),
		TotalWater:  pour.TotalWater(steps, adding),
		Preview:     pour.Preview(steps),
	}
	if ratio, ok := pour.BrewRatio(resp.TotalWater, coffee); ok {
		resp.Ratio = &ratio
		resp.RatioText = pour.FormatRatio(ratio)
	}
	return resp
}

func newDraftResponse(st session.State) DraftResponse {
	next := "0:00"
	if n := len(st.Draft); n > 0 {
		next = pour.NextPourTime(st.Draft[n-1].Time)
	}
	return DraftResponse{
		SessionID:      st.SessionID,
		SelectedBeanID: st.SelectedBeanID,
		Steps:          st.Draft,
		TotalPoured:    pour.TotalPouredWater(st.Draft),
		NextTime:       next,
		Preview:        pour.Preview(st.Draft),
		LastActivity:   st.LastActivity,
	}
}
