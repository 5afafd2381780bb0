package config

import (
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Business constants for KhidkiVada Foods. The seller ships from a single
// state; tax splits (CGST+SGST vs IGST) hinge on the buyer's state
// relative to this one.
const DefaultSellerState = "Maharashtra"

// SellerState returns the seller's GST jurisdiction.
//
// Set via env:
// - SELLER_STATE=Maharashtra
func SellerState() string {
	v := strings.TrimSpace(os.Getenv("SELLER_STATE"))
	if v == "" {
		return DefaultSellerState
	}
	return v
}

var defaultOverpayTolerance = decimal.New(5, -3) // 0.005, one half-paisa of rounding slack

// OverpayTolerance is how far past the grand total a payment may go before
// it is rejected. Amounts are currency with 2 decimal places, so the
// default absorbs rounding only.
//
// Set via env:
// - OVERPAY_TOLERANCE=0.005
func OverpayTolerance() decimal.Decimal {
	v := strings.TrimSpace(os.Getenv("OVERPAY_TOLERANCE"))
	if v == "" {
		return defaultOverpayTolerance
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return defaultOverpayTolerance
	}
	return d
}
