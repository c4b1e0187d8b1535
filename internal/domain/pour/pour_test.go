package pour_test

import (
	"math"
	"testing"

	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/stretchr/testify/require"
)

func TestNextPourTime(t *testing.T) {
	cases := map[string]string{
		"2:45":    "3:15",
		"0:00":    "0:30",
		"0:30":    "1:00",
		"1:29":    "1:59",
		"0:90":    "2:00",
		"10:59":   "11:29",
		" 1 : 05": "1:35",
		"garbage": "0:30",
		"":        "0:30",
		"1:2:3":   "0:30",
		"a:10":    "0:30",
		"1:xx":    "0:30",
		"-1:00":   "0:30",

		"9999999999999:00":    "0:30",
		"0:99999999999999999": "0:30",
		"1000000:00":          "1000000:30",
	}
	for in, want := range cases {
		require.Equal(t, want, pour.NextPourTime(in), "input %q", in)
	}
}

func TestTotalWater(t *testing.T) {
	steps := []pour.Step{{WaterAmount: 40, Time: "0:00"}, {WaterAmount: 60, Time: "0:30"}}
	require.Equal(t, 100.0, pour.TotalPouredWater(steps))
	require.Equal(t, 0.0, pour.TotalPouredWater(nil))
	require.Equal(t, 112.5, pour.TotalWater(steps, 12.5))
	require.Equal(t, pour.TotalPouredWater(steps)+12.5, pour.TotalWater(steps, 12.5))
}

func TestTotalWater_HugeAmountsSaturate(t *testing.T) {
	steps := []pour.Step{{WaterAmount: 1.7e308, Time: "0:00"}, {WaterAmount: 1.7e308, Time: "0:30"}}
	require.Equal(t, math.MaxFloat64, pour.TotalPouredWater(steps))
	require.Equal(t, math.MaxFloat64, pour.TotalWater(steps, 1.7e308))
	require.Equal(t, 100.0, pour.TotalWater([]pour.Step{{WaterAmount: 100}, {WaterAmount: math.Inf(1)}}, math.NaN()))

	ratio, ok := pour.BrewRatio(pour.TotalWater(steps, 0), 20)
	require.True(t, ok)
	require.False(t, math.IsInf(ratio, 0))
}

func TestTotalWater_MonotonicWhenAppending(t *testing.T) {
	s := pour.NewDraft()
	prev := pour.TotalWater(s, 100)
	for _, amount := range []float64{0, 60, 0.1, 0.2, 35} {
		var err error
		s, err = s.Append(amount)
		require.NoError(t, err)
		total := pour.TotalWater(s, 100)
		require.GreaterOrEqual(t, total, prev)
		prev = total
	}
	// decimal summation keeps 0.1 + 0.2 exact
	require.Equal(t, 135.3, pour.TotalPouredWater(s))
}

func TestBrewRatio(t *testing.T) {
	ratio, ok := pour.BrewRatio(100, 20)
	require.True(t, ok)
	require.Equal(t, 5.0, ratio)

	ratio, ok = pour.BrewRatio(100, 0)
	require.False(t, ok)
	require.Zero(t, ratio)

	_, ok = pour.BrewRatio(100, -3)
	require.False(t, ok)

	_, ok = pour.BrewRatio(math.Inf(1), 20)
	require.False(t, ok)
	_, ok = pour.BrewRatio(100, math.Inf(1))
	require.False(t, ok)
	_, ok = pour.BrewRatio(math.MaxFloat64, 1e-300)
	require.False(t, ok, "quotient overflows")
	require.Equal(t, "-", pour.FormatRatio(math.Inf(1)))

	require.Equal(t, "1:15.5", pour.FormatRatio(15.5))
	require.Equal(t, "1:16.7", pour.FormatRatio(250.0/15.0))
}

func TestPreview(t *testing.T) {
	steps := []pour.Step{{WaterAmount: 40, Time: "0:00"}, {WaterAmount: 62.5, Time: "0:30"}}
	require.Equal(t, "40g (0:00) → 62.5g (0:30)", pour.Preview(steps))
	require.Equal(t, "", pour.Preview(nil))
}

func TestScheduleEncodeDecode(t *testing.T) {
	s := pour.Schedule{{WaterAmount: 40, Time: "0:00"}, {WaterAmount: 60, Time: "0:30"}, {WaterAmount: 50, Time: "1:00"}}
	raw, ok, err := s.Encode()
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"water_amount":40,"time":"0:00"},{"water_amount":60,"time":"0:30"},{"water_amount":50,"time":"1:00"}]`, raw)

	decoded, err := pour.Decode(raw, true)
	require.NoError(t, err)
	require.Equal(t, s, decoded)
}

func TestScheduleAbsentVersusEmpty(t *testing.T) {
	_, ok, err := pour.Schedule(nil).Encode()
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = pour.Schedule{}.Encode()
	require.NoError(t, err)
	require.False(t, ok)

	s, err := pour.Decode("", false)
	require.NoError(t, err)
	require.Nil(t, s)

	s, err = pour.Decode("[]", true)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Len(t, s, 0)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := pour.Decode("{not json", true)
	require.ErrorIs(t, err, pour.ErrMalformedSchedule)

	_, err = pour.Decode(`[{"water_amount":"lots","time":"0:00"}]`, true)
	require.ErrorIs(t, err, pour.ErrMalformedSchedule)
}

func TestDraftEditing(t *testing.T) {
	d := pour.NewDraft()
	require.Equal(t, pour.Schedule{{WaterAmount: 40, Time: "0:00"}}, d)

	d, err := d.Append(pour.DefaultStepAmount)
	require.NoError(t, err)
	d, err = d.Append(70)
	require.NoError(t, err)
	require.Equal(t, "0:30", d[1].Time)
	require.Equal(t, "1:00", d[2].Time)

	edited, err := d.Edit(1, 55, "0:40")
	require.NoError(t, err)
	require.Equal(t, pour.Step{WaterAmount: 55, Time: "0:40"}, edited[1])
	require.Equal(t, 60.0, d[1].WaterAmount, "original must be untouched")

	_, err = d.Edit(5, 10, "0:10")
	require.ErrorIs(t, err, pour.ErrStepOutOfRange)
	_, err = d.Edit(0, -1, "0:10")
	require.ErrorIs(t, err, pour.ErrNegativeAmount)
	_, err = d.Append(-5)
	require.ErrorIs(t, err, pour.ErrNegativeAmount)

	removed, err := d.Remove(0)
	require.NoError(t, err)
	require.Len(t, removed, 2)
	require.Equal(t, "0:30", removed[0].Time)

	empty, err := pour.Schedule{}.Append(30)
	require.NoError(t, err)
	require.Equal(t, "0:00", empty[0].Time)
}

func TestValidate(t *testing.T) {
	require.NoError(t, pour.NewDraft().Validate())
	err := pour.Schedule{{WaterAmount: 40, Time: "0:00"}, {WaterAmount: -1, Time: "0:30"}}.Validate()
	require.ErrorIs(t, err, pour.ErrNegativeAmount)
	require.Contains(t, err.Error(), "step 2")

	err = pour.Schedule{{WaterAmount: 1.7e308, Time: "0:00"}}.Validate()
	require.ErrorIs(t, err, pour.ErrAmountTooLarge)
	require.NoError(t, pour.Schedule{{WaterAmount: pour.MaxAmount, Time: "0:00"}}.Validate())

	_, err = pour.NewDraft().Append(pour.MaxAmount + 1)
	require.ErrorIs(t, err, pour.ErrAmountTooLarge)
}
