package state_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/fatura/internal/state"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		def  float64
		want float64
	}{
		{"plain float", 12.5, 0, 12.5},
		{"string number", "42", 0, 42},
		{"comma decimal", "19,5", 0, 19.5},
		{"whitespace", " 3.25 ", 0, 3.25},
		{"negative", "-588,74", 0, -588.74},
		{"garbage", "abc", 7, 7},
		{"nil", nil, 1, 1},
		{"nan", math.NaN(), 2, 2},
		{"positive inf", math.Inf(1), 3, 3},
		{"bool", true, 5, 5},
		{"slice", []any{1.0}, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, state.Number(tt.raw, tt.def))
		})
	}
}

func TestInteger(t *testing.T) {
	assert.Equal(t, 14, state.Integer(nil, 14))
	assert.Equal(t, 3, state.Integer("3.9", 0), "fractions truncate")
	assert.Equal(t, -2, state.Integer(-2.0, 0))
	assert.Equal(t, 5, state.Integer("x", 5))
}
