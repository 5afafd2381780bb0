package models

import "github.com/shopspring/decimal"

// completionEpsilon absorbs 2-decimal rounding when deciding whether an
// order is fully paid. Half a paisa: anything closer than this to zero
// due is treated as settled.
var completionEpsilon = decimal.New(5, -3)

// OrderTotals is derived, never stored as a source of truth. Recompute it
// from the line items and payment ledger whenever it is needed.
type OrderTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         TaxBreakdown    `json:"tax"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Paid        decimal.Decimal `json:"paid"`
	Due         decimal.Decimal `json:"due"`
	PaidPercent decimal.Decimal `json:"paid_percent"`
	IsComplete  bool            `json:"is_complete"`
	IsOverpaid  bool            `json:"is_overpaid"`
}

// ComputeTotals derives subtotal, tax, grand total, paid and due from an
// order's line items and payment ledger. Pure: no I/O, no mutation of its
// inputs. Zero-quantity lines contribute nothing; due is floored at zero
// for display even if the ledger somehow holds an overpayment (which is
// then surfaced via IsOverpaid rather than a negative due).
func ComputeTotals(items []OrderItem, payments []Payment, clientState string, sellerState string) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subtotal = subtotal.Round(2)

	tax := ComputeTax(subtotal, clientState, sellerState)
	grandTotal := subtotal.Add(tax.Total())

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	paid = paid.Round(2)

	rawDue := grandTotal.Sub(paid)
	due := rawDue
	if due.LessThanOrEqual(completionEpsilon) {
		due = decimal.Zero
	}

	totals := OrderTotals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: grandTotal,
		Paid:       paid,
		Due:        due,
		IsComplete: rawDue.LessThanOrEqual(completionEpsilon),
		IsOverpaid: paid.Sub(grandTotal).GreaterThan(completionEpsilon),
	}
	totals.PaidPercent = paidPercent(paid, grandTotal)
	return totals
}

var oneHundred = decimal.NewFromInt(100)

func paidPercent(paid, grandTotal decimal.Decimal) decimal.Decimal {
	if grandTotal.LessThanOrEqual(decimal.Zero) {
		return oneHundred
	}
	pct := paid.Mul(oneHundred).DivRound(grandTotal, 1)
	if pct.GreaterThan(oneHundred) {
		return oneHundred
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}
