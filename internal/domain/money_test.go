package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/concilia/internal/domain"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"thousands and decimal separators", "1.234,56", "1234.56"},
		{"plain integer", "1500", "1500"},
		{"negative integer", "-5", "-5"},
		{"currency prefix", "R$ 1.500,00", "1500.00"},
		{"decimal only", "12,35", "12.35"},
		{"negative with decimals", "-0,50", "-0.50"},
		{"trailing comma", "1,", "1"},
		{"multiple commas keep first as decimal point", "1,2,3", "1.23"},
		{"dot is a thousands separator even without comma", "1500.00", "150000"},
		{"garbage", "abc", "0"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
		{"sign in the middle", "1-2", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ParseMoney(tt.input)
			want := decimal.RequireFromString(tt.want)

			if !got.Equal(want) {
				t.Errorf("ParseMoney(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}
