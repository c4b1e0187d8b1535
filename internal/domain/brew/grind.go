package brew

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	MinGrindClicks = 1
	MaxGrindClicks = 50
)

// Grind is the grinder setting. The column has always been TEXT: new records
// store a click count, while older rows may hold free text such as "medium
// fine". Exactly one of Clicks and Legacy is set; the zero value means no
// grind was recorded.
//
// Coercion policy on read: a value that parses as a positive integral number
// (including "24.0") becomes Clicks; anything else, "0" and negatives
// included, is kept verbatim in Legacy so no stored text reads as "no grind".
type Grind struct {
	Clicks int    `json:"clicks,omitempty"`
	Legacy string `json:"legacy,omitempty"`
}

// GrindClicks returns a numeric grind setting.
func GrindClicks(n int) Grind {
	return Grind{Clicks: n}
}

// ParseGrind applies the read coercion policy to a stored value.
func ParseGrind(raw string) Grind {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Grind{}
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= MinGrindClicks {
		return Grind{Clicks: n}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && f >= MinGrindClicks && f < math.MaxInt32 {
		return Grind{Clicks: int(f)}
	}
	return Grind{Legacy: raw}
}

// IsZero reports whether no grind was recorded.
func (g Grind) IsZero() bool {
	return g.Clicks == 0 && g.Legacy == ""
}

// Numeric reports whether g is a click count.
func (g Grind) Numeric() bool {
	return g.Legacy == "" && g.Clicks != 0
}

// String returns the stored text form.
func (g Grind) String() string {
	if g.Legacy != "" {
		return g.Legacy
	}
	if g.Clicks == 0 {
		return ""
	}
	return strconv.Itoa(g.Clicks)
}

// UnmarshalJSON also accepts a bare number or string, which is how callers
// usually send it.
func (g *Grind) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*g = Grind{Clicks: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = ParseGrind(s)
		return nil
	}
	type plain Grind
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = Grind(p)
	return nil
}
