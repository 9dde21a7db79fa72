package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain integer", raw: "45000", want: "45000"},
		{name: "decimal", raw: "1.25", want: "1.25"},
		{name: "thousands separators", raw: "1,25,000", want: "125000"},
		{name: "rupee sign", raw: "₹ 450", want: "450"},
		{name: "rs prefix upper", raw: "Rs 450.50", want: "450.5"},
		{name: "rs dot prefix", raw: "rs.99", want: "99"},
		{name: "surrounding whitespace", raw: "  12  ", want: "12"},
		{name: "explicit plus", raw: "+3", want: "3"},
		{name: "negative", raw: "-2.5", want: "-2.5"},
		{name: "blank", raw: "   ", wantErr: ErrEmpty},
		{name: "only currency marker", raw: "₹", wantErr: ErrEmpty},
		{name: "letters", raw: "abc", wantErr: ErrInvalid},
		{name: "two dots", raw: "1.2.3", wantErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestGrouped(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"125000", "125,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"0", "0.00"},
		{"-0.40", "-0.40"},
		{"999.995", "1,000.00"},
		{"-1234567.5", "-1,234,567.50"},
		{"1234567890123456.78", "1,234,567,890,123,456.78"},
		{"99999999999999999.99", "99,999,999,999,999,999.99"},
		{"123456789012345678901.005", "123,456,789,012,345,678,901.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Grouped(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPlainAndSymbol(t *testing.T) {
	assert.Equal(t, "125000.00", Plain(decimal.RequireFromString("125000")))
	assert.Equal(t, "2.50", Plain(decimal.RequireFromString("2.5")))
	assert.Equal(t, "₹ 125,000.00", WithSymbol(decimal.RequireFromString("125000")))
}

func TestRound2_HalfEven(t *testing.T) {
	assert.Equal(t, "0.12", Round2(decimal.RequireFromString("0.125")).StringFixed(2))
	assert.Equal(t, "0.14", Round2(decimal.RequireFromString("0.135")).StringFixed(2))
}
