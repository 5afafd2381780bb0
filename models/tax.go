package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GST rates for packaged food products. Business constants, not
// configuration: change here, nowhere else.
//
// Intra-state sales split the 12% levy into equal central and state
// halves; inter-state sales carry the whole levy as IGST.
var (
	CgstRate = decimal.New(6, -2)  // 0.06
	SgstRate = decimal.New(6, -2)  // 0.06
	IgstRate = decimal.New(12, -2) // 0.12
)

// TaxBreakdown is a tagged result: Mode says which branch applies, and
// only that branch's fields are set. Inapplicable components are nil, not
// zero, so a caller cannot mistake "no CGST here" for "CGST of 0".
type TaxBreakdown struct {
	Mode TaxMode          `json:"mode"`
	Cgst *decimal.Decimal `json:"cgst,omitempty"`
	Sgst *decimal.Decimal `json:"sgst,omitempty"`
	Igst *decimal.Decimal `json:"igst,omitempty"`
}

// Total is the sum of the applicable components.
func (t TaxBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	if t.Cgst != nil {
		total = total.Add(*t.Cgst)
	}
	if t.Sgst != nil {
		total = total.Add(*t.Sgst)
	}
	if t.Igst != nil {
		total = total.Add(*t.Igst)
	}
	return total
}

// ComputeTax splits GST on a subtotal by the buyer's state relative to the
// seller's. Precondition: subtotal >= 0 (enforced by the totals engine).
func ComputeTax(subtotal decimal.Decimal, clientState string, sellerState string) TaxBreakdown {
	if SameJurisdiction(clientState, sellerState) {
		cgst := subtotal.Mul(CgstRate).Round(2)
		sgst := subtotal.Mul(SgstRate).Round(2)
		return TaxBreakdown{Mode: TaxModeIntraState, Cgst: &cgst, Sgst: &sgst}
	}
	igst := subtotal.Mul(IgstRate).Round(2)
	return TaxBreakdown{Mode: TaxModeInterState, Igst: &igst}
}

// SameJurisdiction compares state names the way they arrive from forms:
// case-insensitive, ignoring surrounding whitespace.
func SameJurisdiction(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
