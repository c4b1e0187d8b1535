package pour

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedSchedule indicates a stored schedule blob could not be decoded.
var ErrMalformedSchedule = errors.New("malformed pour schedule")

// Step is one water addition in a pour-over schedule.
type Step struct {
	WaterAmount float64 `json:"water_amount"`
	Time        string  `json:"time"`
}

// Schedule is an ordered list of pour steps. A nil Schedule means the record
// has no schedule at all, which is distinct from an empty one.
type Schedule []Step

// Encode returns the stored text form of the schedule. Nil and empty
// schedules are stored as NULL (ok=false).
func (s Schedule) Encode() (string, bool, error) {
	if len(s) == 0 {
		return "", false, nil
	}
	data, err := json.Marshal([]Step(s))
	if err != nil {
		return "", false, fmt.Errorf("encode pour schedule: %w", err)
	}
	return string(data), true, nil
}

// Decode parses a stored schedule. valid=false (NULL) yields a nil Schedule.
func Decode(raw string, valid bool) (Schedule, error) {
	if !valid || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var steps []Step
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchedule, err)
	}
	if steps == nil {
		// "null" literal
		return nil, nil
	}
	return Schedule(steps), nil
}

// TotalPouredWater sums the water of every step. Non-finite amounts are
// skipped and a sum beyond float64 range saturates at math.MaxFloat64.
func TotalPouredWater(steps []Step) float64 {
	return saturate(pouredDecimal(steps))
}

// TotalWater is the poured water plus the bypass water added outside the schedule.
func TotalWater(steps []Step, addingWater float64) float64 {
	total := pouredDecimal(steps)
	if finite(addingWater) {
		total = total.Add(decimal.NewFromFloat(addingWater))
	}
	return saturate(total)
}

func pouredDecimal(steps []Step) decimal.Decimal {
	total := decimal.Zero
	for _, step := range steps {
		if finite(step.WaterAmount) {
			total = total.Add(decimal.NewFromFloat(step.WaterAmount))
		}
	}
	return total
}

// BrewRatio returns totalWater / coffeeAmount. ok is false when the coffee
// mass is not positive or either input is not finite; a missing ratio is
// never reported as zero.
func BrewRatio(totalWater, coffeeAmount float64) (float64, bool) {
	if !finite(totalWater) || !finite(coffeeAmount) || coffeeAmount <= 0 {
		return 0, false
	}
	ratio, _ := decimal.NewFromFloat(totalWater).Div(decimal.NewFromFloat(coffeeAmount)).Float64()
	if !finite(ratio) {
		return 0, false
	}
	return ratio, true
}

// FormatRatio renders a ratio the way brewers write it, e.g. "1:15.5".
func FormatRatio(ratio float64) string {
	if !finite(ratio) {
		return "-"
	}
	return "1:" + decimal.NewFromFloat(ratio).StringFixed(1)
}

func saturate(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// maxLabelMinutes bounds parsed time labels so the arithmetic cannot overflow.
const maxLabelMinutes = 1_000_000

// NextPourTime returns the label 30 seconds after last. Labels that are not
// "minutes:seconds", or that are absurdly large, fall back to "0:30".
func NextPourTime(last string) string {
	const fallback = "0:30"

	parts := strings.Split(last, ":")
	if len(parts) != 2 {
		return fallback
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || minutes < 0 {
		return fallback
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || seconds < 0 {
		return fallback
	}

	if minutes > maxLabelMinutes || seconds > maxLabelMinutes*60 {
		return fallback
	}

	total := minutes*60 + seconds + 30
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Preview renders the schedule as "40g (0:00) → 60g (0:30)".
func Preview(steps []Step) string {
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		parts = append(parts, fmt.Sprintf("%sg (%s)", FormatGrams(step.WaterAmount), step.Time))
	}
	return strings.Join(parts, " → ")
}

// FormatGrams prints a gram amount without trailing zeros.
func FormatGrams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
