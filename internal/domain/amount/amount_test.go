package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseOrZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3000", "3000"},
		{" 7.20 ", "7.2"},
		{"5,000", "5000"},
		{"1,250,000.75", "1250000.75"},
		{"-2,500", "-2500"},
		{"1,5", "0"},
		{"12,34", "0"},
		{"1234,567", "0"},
		{"-12.5", "-12.5"},
		{"", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tc.want).Equal(ParseOrZero(tc.in)), "got %s", ParseOrZero(tc.in))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "36000.00", FormatMoney(decimal.NewFromInt(36000)))
	assert.Equal(t, "0.13", FormatMoney(Money(decimal.RequireFromString("0.125"))))
}
