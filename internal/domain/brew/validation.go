package brew

import (
	"fmt"
	"math"
	"strings"

	"github.com/rpggio/brewlog/internal/domain/day"
	"github.com/rpggio/brewlog/internal/domain/pour"
)

const (
	MinScore     = 1
	MaxScore     = 5
	MinWaterTemp = 88
	MaxWaterTemp = 100
)

// ValidateCreateInput checks every field of a record creation request.
// Bean existence is checked by the repository at insert time.
func ValidateCreateInput(req CreateRequest) error {
	if req.BeanID <= 0 {
		return fmt.Errorf("%w: bean_id is required", ErrInvalidInput)
	}
	if _, ok := day.Normalize(req.BrewDate); !ok {
		return fmt.Errorf("%w: brew date %q is not a YYYY-MM-DD date", ErrInvalidInput, req.BrewDate)
	}
	if err := validateGrind(req.Grind); err != nil {
		return err
	}
	if err := checkNonNegative("coffee amount", req.CoffeeAmount); err != nil {
		return err
	}
	if req.AddingWater != nil {
		if err := checkNonNegative("adding water", *req.AddingWater); err != nil {
			return err
		}
	}
	if req.WaterTemp != nil && (*req.WaterTemp < MinWaterTemp || *req.WaterTemp > MaxWaterTemp) {
		return fmt.Errorf("%w: water temperature %d outside %d..%d", ErrInvalidInput, *req.WaterTemp, MinWaterTemp, MaxWaterTemp)
	}
	if !req.Method.Valid() {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidInput, req.Method)
	}
	if req.Equipment != "" && !req.Equipment.Valid() {
		return fmt.Errorf("%w: unknown equipment %q", ErrInvalidInput, req.Equipment)
	}
	if err := req.PourSchedule.Validate(); err != nil {
		return fmt.Errorf("%w: pour schedule %v", ErrInvalidInput, err)
	}
	return validateScores(req.Scores)
}

func validateGrind(g Grind) error {
	if g.Clicks != 0 && g.Legacy != "" {
		return fmt.Errorf("%w: grind is either clicks or legacy text, not both", ErrInvalidInput)
	}
	if g.Legacy != "" {
		if strings.TrimSpace(g.Legacy) == "" {
			return fmt.Errorf("%w: legacy grind is blank", ErrInvalidInput)
		}
		return nil
	}
	if g.Clicks != 0 && (g.Clicks < MinGrindClicks || g.Clicks > MaxGrindClicks) {
		return fmt.Errorf("%w: grind %d clicks outside %d..%d", ErrInvalidInput, g.Clicks, MinGrindClicks, MaxGrindClicks)
	}
	return nil
}

func validateScores(s Scores) error {
	fields := []struct {
		name  string
		value int
	}{
		{"taste", s.Taste},
		{"aroma", s.Aroma},
		{"body", s.Body},
		{"acidity", s.Acidity},
		{"overall", s.Overall},
	}
	for _, f := range fields {
		if f.value < MinScore || f.value > MaxScore {
			return fmt.Errorf("%w: %s score %d outside %d..%d", ErrInvalidInput, f.name, f.value, MinScore, MaxScore)
		}
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
	}
	if v > pour.MaxAmount {
		return fmt.Errorf("%w: %s must be at most %d g", ErrInvalidInput, name, pour.MaxAmount)
	}
	return nil
}
