package day

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, ok := Parse("2024-03-09")
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("2024-03-09 07:30:00")
	require.True(t, ok)
	require.Equal(t, 7, got.Hour())

	for _, bad := range []string{"", "  ", "yesterday", "2024/03/09", "2024-13-01"} {
		_, ok := Parse(bad)
		require.False(t, ok, "input %q", bad)
	}
}

func TestNormalize(t *testing.T) {
	s, ok := Normalize("2024-03-09T10:00:00Z")
	require.True(t, ok)
	require.Equal(t, "2024-03-09", s)

	s, ok = Normalize("")
	require.True(t, ok)
	require.Empty(t, s)

	_, ok = Normalize("soon")
	require.False(t, ok)
}
