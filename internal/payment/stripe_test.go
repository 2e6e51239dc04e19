package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Test: decimal→cents変換
func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"69.98", 6998},
		{"10.00", 1000},
		{"0.01", 1},
		{"29.99", 2999},
		{"1000.50", 100050},
	}

	for _, c := range cases {
		got := toCents(decimal.RequireFromString(c.in))
		assert.Equal(t, c.want, got, c.in)
	}
}
