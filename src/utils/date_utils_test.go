package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"iso passthrough", "2024-01-15", "2024-01-15", true},
		{"us slashes", "01/15/2024", "2024-01-15", true},
		{"us slashes no padding", "1/5/2024", "2024-01-05", true},
		{"us dashes", "01-15-2024", "2024-01-15", true},
		{"two digit year", "01/15/24", "2024-01-15", true},
		{"long month", "January 15, 2024", "2024-01-15", true},
		{"short month", "Jan 15, 2024", "2024-01-15", true},
		{"whitespace trimmed", "  2024-01-15  ", "2024-01-15", true},
		{"empty", "", "", false},
		{"garbage", "not a date", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDayMonth(t *testing.T) {
	got, ok := ResolveDayMonth("03/15", 2024)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-15", got)

	_, ok = ResolveDayMonth("garbage", 2024)
	assert.False(t, ok)
}
