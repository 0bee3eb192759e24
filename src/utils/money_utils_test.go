package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "123.45", "123.45", true},
		{"dollar sign", "$123.45", "123.45", true},
		{"thousands separators", "$1,234,567.89", "1234567.89", true},
		{"negative sign", "-45.00", "-45", true},
		{"negative with dollar", "-$45.00", "-45", true},
		{"accounting negative", "(45.00)", "-45", true},
		{"accounting negative with dollar", "($1,250.00)", "-1250", true},
		{"percent stripped", "24.99%", "24.99", true},
		{"integer", "500", "500", true},
		{"empty", "", "0", false},
		{"garbage", "abc", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
