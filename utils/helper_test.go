package utils_test

import (
	"testing"

	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/shopspring/decimal"
)

func TestFormatCurrency_IndianGrouping(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"0", "₹0.00"},
		{"100", "₹100.00"},
		{"1234.5", "₹1,234.50"},
		{"352800", "₹3,52,800.00"},
		{"12345678.9", "₹1,23,45,678.90"},
		{"-3528", "-₹3,528.00"},
	}
	for _, tc := range cases {
		got := utils.FormatCurrency(decimal.RequireFromString(tc.in))
		if got != tc.expected {
			t.Fatalf("FormatCurrency(%s): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestParseAmount_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"3528", "3528"},
		{"3,528", "3528"},
		{"₹3,528.00", "3528"},
		{"Rs 1764", "1764"},
		{"INR -1,234.50", "-1234.5"},
	}
	for _, tc := range cases {
		d, err := utils.ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", tc.in, err)
		}
		if d.String() != tc.expected {
			t.Fatalf("ParseAmount(%q) expected %s, got %s", tc.in, tc.expected, d.String())
		}
	}
}

func TestParseAmount_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "₹"} {
		if _, err := utils.ParseAmount(in); err == nil {
			t.Fatalf("ParseAmount(%q) expected error", in)
		}
	}
}

func TestIsValidGstin(t *testing.T) {
	valid := []string{
		"27ABCDE1234F1Z5",
		"24AAACC1206D1ZM",
		" 27abcde1234f1z5 ", // normalized before matching
	}
	for _, g := range valid {
		if !utils.IsValidGstin(g) {
			t.Fatalf("IsValidGstin(%q) expected true", g)
		}
	}
	invalid := []string{
		"",
		"27ABCDE1234F1X5",  // missing Z marker
		"7ABCDE1234F1Z5",   // short state code
		"27ABCDE1234F0Z5",  // entity digit 0 not allowed
		"27ABCDE1234F1Z55", // too long
	}
	for _, g := range invalid {
		if utils.IsValidGstin(g) {
			t.Fatalf("IsValidGstin(%q) expected false", g)
		}
	}
}
