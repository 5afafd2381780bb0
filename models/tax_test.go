package models_test

import (
	"testing"

	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/shopspring/decimal"
)

func TestComputeTax_JurisdictionBranch(t *testing.T) {
	cases := []struct {
		name        string
		subtotal    string
		clientState string
		sellerState string
		mode        models.TaxMode
		cgst        string
		sgst        string
		igst        string
	}{
		{"intra-state split", "3150", "Maharashtra", "Maharashtra", models.TaxModeIntraState, "189", "189", ""},
		{"inter-state single levy", "3150", "Gujarat", "Maharashtra", models.TaxModeInterState, "", "", "378"},
		{"state compare ignores case and spaces", "100", "  maharashtra ", "Maharashtra", models.TaxModeIntraState, "6", "6", ""},
		{"zero subtotal still tagged", "0", "Karnataka", "Maharashtra", models.TaxModeInterState, "", "", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subtotal, err := decimal.NewFromString(tc.subtotal)
			if err != nil {
				t.Fatalf("bad subtotal %q: %v", tc.subtotal, err)
			}
			tax := models.ComputeTax(subtotal, tc.clientState, tc.sellerState)
			if tax.Mode != tc.mode {
				t.Fatalf("mode: expected %s, got %s", tc.mode, tax.Mode)
			}
			assertComponent(t, "cgst", tax.Cgst, tc.cgst)
			assertComponent(t, "sgst", tax.Sgst, tc.sgst)
			assertComponent(t, "igst", tax.Igst, tc.igst)
		})
	}
}

// assertComponent: empty expectation means the component must be absent,
// not zero.
func assertComponent(t *testing.T, name string, got *decimal.Decimal, expected string) {
	t.Helper()
	if expected == "" {
		if got != nil {
			t.Fatalf("%s: expected nil, got %s", name, got.String())
		}
		return
	}
	if got == nil {
		t.Fatalf("%s: expected %s, got nil", name, expected)
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		t.Fatalf("bad expectation %q: %v", expected, err)
	}
	if !got.Equal(want) {
		t.Fatalf("%s: expected %s, got %s", name, want.String(), got.String())
	}
}

func TestComputeTax_ComponentsRoundIndependently(t *testing.T) {
	// 10.07 * 6% = 0.6042 per half; 10.07 * 12% = 1.2084. Each component
	// rounds to 2 decimals on its own, so the split total and the single
	// levy may legitimately differ by a paisa.
	subtotal := decimal.RequireFromString("10.07")

	intra := models.ComputeTax(subtotal, "Maharashtra", "Maharashtra")
	if got := intra.Cgst.String(); got != "0.6" {
		t.Fatalf("cgst: expected 0.6, got %s", got)
	}
	if got := intra.Total().String(); got != "1.2" {
		t.Fatalf("intra total: expected 1.2, got %s", got)
	}

	inter := models.ComputeTax(subtotal, "Delhi", "Maharashtra")
	if got := inter.Igst.String(); got != "1.21" {
		t.Fatalf("igst: expected 1.21, got %s", got)
	}
}

func TestTaxBreakdown_TotalSkipsAbsentComponents(t *testing.T) {
	igst := decimal.RequireFromString("378")
	tax := models.TaxBreakdown{Mode: models.TaxModeInterState, Igst: &igst}
	if got := tax.Total(); !got.Equal(igst) {
		t.Fatalf("total: expected 378, got %s", got.String())
	}

	empty := models.TaxBreakdown{}
	if got := empty.Total(); !got.IsZero() {
		t.Fatalf("empty total: expected 0, got %s", got.String())
	}
}
