package models_test

import (
	"testing"

	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/shopspring/decimal"
)

func totalsWith(paid, grand string) models.OrderTotals {
	p := decimal.RequireFromString(paid)
	g := decimal.RequireFromString(grand)
	due := g.Sub(p)
	if due.IsNegative() {
		due = decimal.Zero
	}
	return models.OrderTotals{
		GrandTotal: g,
		Paid:       p,
		Due:        due,
		IsComplete: !g.Sub(p).GreaterThan(decimal.RequireFromString("0.005")),
	}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		paid     string
		grand    string
		expected models.OrderStatus
	}{
		{"nothing paid", "0", "3528", models.OrderStatusPending},
		{"partly paid", "1764", "3528", models.OrderStatusPartiallyPaid},
		{"fully paid", "3528", "3528", models.OrderStatusComplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.DeriveStatus(totalsWith(tc.paid, tc.grand))
			if got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestNextStatusAfterPayment(t *testing.T) {
	cases := []struct {
		name           string
		current        models.OrderStatus
		manual         bool
		paid           string
		grand          string
		expectedStatus models.OrderStatus
		expectedManual bool
	}{
		{
			name:    "settling payment forces complete and clears override",
			current: models.OrderStatusShipped, manual: true,
			paid: "3528", grand: "3528",
			expectedStatus: models.OrderStatusComplete, expectedManual: false,
		},
		{
			name:    "manual shipped sticks through a partial payment",
			current: models.OrderStatusShipped, manual: true,
			paid: "1764", grand: "3528",
			expectedStatus: models.OrderStatusShipped, expectedManual: true,
		},
		{
			name:    "derived status follows the ledger",
			current: models.OrderStatusPending, manual: false,
			paid: "1764", grand: "3528",
			expectedStatus: models.OrderStatusPartiallyPaid, expectedManual: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, manual := models.NextStatusAfterPayment(tc.current, tc.manual, totalsWith(tc.paid, tc.grand))
			if status != tc.expectedStatus || manual != tc.expectedManual {
				t.Fatalf("expected (%s, %v), got (%s, %v)", tc.expectedStatus, tc.expectedManual, status, manual)
			}
		})
	}
}
