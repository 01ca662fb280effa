package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain token", "abc.def.ghi", "abc.def.ghi"},
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase bearer", "bearer abc.def.ghi", "abc.def.ghi"},
		{"surrounding spaces", "  Bearer abc.def.ghi  ", "abc.def.ghi"},
		{"spaces after prefix", "Bearer   abc.def.ghi", "abc.def.ghi"},
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"bearer is not a prefix of the token itself", "Bearertoken", "Bearertoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToken(tt.raw))
		})
	}
}
