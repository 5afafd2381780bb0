package models_test

import (
	"testing"

	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/shopspring/decimal"
)

func line(item models.ItemName, unitPrice string, qty int) models.OrderItem {
	price := decimal.RequireFromString(unitPrice)
	return models.OrderItem{
		Item:      item,
		UnitPrice: price,
		Quantity:  qty,
		LineTotal: price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func paid(amounts ...string) []models.Payment {
	out := make([]models.Payment, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, models.Payment{Amount: decimal.RequireFromString(a)})
	}
	return out
}

func TestComputeTotals_IntraStateOrder(t *testing.T) {
	items := []models.OrderItem{line(models.Pack15kg, "1575", 2)}

	totals := models.ComputeTotals(items, nil, "Maharashtra", "Maharashtra")

	if got := totals.Subtotal.String(); got != "3150" {
		t.Fatalf("subtotal: expected 3150, got %s", got)
	}
	if totals.Tax.Mode != models.TaxModeIntraState {
		t.Fatalf("tax mode: expected %s, got %s", models.TaxModeIntraState, totals.Tax.Mode)
	}
	if got := totals.GrandTotal.String(); got != "3528" {
		t.Fatalf("grand total: expected 3528, got %s", got)
	}
	if got := totals.Due.String(); got != "3528" {
		t.Fatalf("due: expected 3528, got %s", got)
	}
	if totals.IsComplete {
		t.Fatal("unpaid order reported complete")
	}
	if !totals.PaidPercent.IsZero() {
		t.Fatalf("paid percent: expected 0, got %s", totals.PaidPercent.String())
	}
}

func TestComputeTotals_ZeroQuantityLinesContributeNothing(t *testing.T) {
	items := []models.OrderItem{
		line(models.Pack1kg, "112", 10),
		line(models.Pack250g, "30", 0),
	}

	totals := models.ComputeTotals(items, nil, "Goa", "Maharashtra")

	if got := totals.Subtotal.String(); got != "1120" {
		t.Fatalf("subtotal: expected 1120, got %s", got)
	}
	// inter-state: 1120 * 12% = 134.40
	if got := totals.GrandTotal.String(); got != "1254.4" {
		t.Fatalf("grand total: expected 1254.4, got %s", got)
	}
}

func TestComputeTotals_RepeatedSmallPaymentsDoNotDrift(t *testing.T) {
	items := []models.OrderItem{line(models.Pack15kg, "1575", 2)} // grand 3528

	payments := make([]models.Payment, 0, 1000)
	paisa := decimal.RequireFromString("0.01")
	for i := 0; i < 1000; i++ {
		payments = append(payments, models.Payment{Amount: paisa})
	}

	totals := models.ComputeTotals(items, payments, "Maharashtra", "Maharashtra")

	if got := totals.Paid.String(); got != "10" {
		t.Fatalf("paid: expected exactly 10 after 1000 paisa payments, got %s", got)
	}
	if got := totals.Due.String(); got != "3518" {
		t.Fatalf("due: expected 3518, got %s", got)
	}
}

func TestComputeTotals_CompletionEpsilon(t *testing.T) {
	items := []models.OrderItem{line(models.Pack15kg, "1575", 2)} // grand 3528

	cases := []struct {
		name      string
		payments  []models.Payment
		complete  bool
		overpaid  bool
		dueIsZero bool
	}{
		{"exactly settled", paid("1764", "1764"), true, false, true},
		{"one paisa short", paid("3527.99"), false, false, false},
		{"one paisa over", paid("3528.01"), true, true, true},
		{"settled within rounding", paid("3527.996"), true, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := models.ComputeTotals(items, tc.payments, "Maharashtra", "Maharashtra")
			if totals.IsComplete != tc.complete {
				t.Fatalf("IsComplete: expected %v, got %v (due=%s)", tc.complete, totals.IsComplete, totals.Due.String())
			}
			if totals.IsOverpaid != tc.overpaid {
				t.Fatalf("IsOverpaid: expected %v, got %v", tc.overpaid, totals.IsOverpaid)
			}
			if totals.Due.IsZero() != tc.dueIsZero {
				t.Fatalf("due: expected zero=%v, got %s", tc.dueIsZero, totals.Due.String())
			}
			if totals.Due.IsNegative() {
				t.Fatalf("due must never be negative, got %s", totals.Due.String())
			}
		})
	}
}

func TestComputeTotals_PaidPercent(t *testing.T) {
	items := []models.OrderItem{line(models.Pack15kg, "1575", 2)} // grand 3528

	half := models.ComputeTotals(items, paid("1764"), "Maharashtra", "Maharashtra")
	if got := half.PaidPercent.String(); got != "50" {
		t.Fatalf("paid percent: expected 50, got %s", got)
	}

	over := models.ComputeTotals(items, paid("4000"), "Maharashtra", "Maharashtra")
	if got := over.PaidPercent.String(); got != "100" {
		t.Fatalf("paid percent caps at 100, got %s", got)
	}
}

func TestComputeTotals_EmptyOrderIsSettled(t *testing.T) {
	totals := models.ComputeTotals(nil, nil, "Maharashtra", "Maharashtra")
	if !totals.IsComplete {
		t.Fatal("zero grand total should count as settled")
	}
	if got := totals.PaidPercent.String(); got != "100" {
		t.Fatalf("paid percent: expected 100, got %s", got)
	}
}
