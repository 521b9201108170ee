package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{" 2025-06-01 ", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-06-01T20:30", time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)},
		{"2025-06-01T20:30:00+02:00", time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	for _, bad := range []string{"", "tomorrow", "2025-13-01", "01/06/2025"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
		assert.False(t, IsDate(bad))
	}
}

func TestMillisecondClock(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 52, 426523274, time.UTC)
	clock := MillisecondClock(func() time.Time { return base })
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 52, 426000000, time.UTC), clock())
}
