package pour

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultBloomAmount is the water of the first step of a fresh draft.
	DefaultBloomAmount = 40.0
	// DefaultStepAmount is the water of a step appended without an amount.
	DefaultStepAmount = 60.0
)

var (
	// ErrStepOutOfRange indicates an edit addressed a step that doesn't exist.
	ErrStepOutOfRange = errors.New("pour step out of range")
	// ErrNegativeAmount indicates a step with a negative water amount.
	ErrNegativeAmount = errors.New("pour amount must not be negative")
	// ErrAmountTooLarge indicates a step above MaxAmount grams.
	ErrAmountTooLarge = errors.New("pour amount is too large")
)

// NewDraft returns the starting schedule for a new brew: a single bloom pour at 0:00.
func NewDraft() Schedule {
	return Schedule{{WaterAmount: DefaultBloomAmount, Time: "0:00"}}
}

// Append returns a copy of s with a new step 30 seconds after the last one.
func (s Schedule) Append(amount float64) (Schedule, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	next := "0:00"
	if len(s) > 0 {
		next = NextPourTime(s[len(s)-1].Time)
	}
	out := make(Schedule, 0, len(s)+1)
	out = append(out, s...)
	return append(out, Step{WaterAmount: amount, Time: next}), nil
}

// Edit returns a copy of s with step i replaced.
func (s Schedule) Edit(i int, amount float64, label string) (Schedule, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("%w: %d", ErrStepOutOfRange, i)
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	out := append(Schedule(nil), s...)
	out[i] = Step{WaterAmount: amount, Time: label}
	return out, nil
}

// Remove returns a copy of s without step i.
func (s Schedule) Remove(i int) (Schedule, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("%w: %d", ErrStepOutOfRange, i)
	}
	out := make(Schedule, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), nil
}

// MaxAmount caps any single gram amount; sums of capped amounts stay finite.
const MaxAmount = 100_000

// Validate reports the first step with a negative, non-finite or oversized amount.
func (s Schedule) Validate() error {
	for i, step := range s {
		if err := checkAmount(step.WaterAmount); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ErrNegativeAmount
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	return nil
}
