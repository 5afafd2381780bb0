package models

import (
	"fmt"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
)

// InvoiceView is the flattened, presentation-ready projection of an order
// for the tax invoice: every amount pre-formatted, tax rows labelled by
// the applicable GST branch, grand total spelled out in words. The
// rendering layer consumes this as-is.
type InvoiceView struct {
	InvoiceNumber string `json:"invoice_number"`
	OrderDate     string `json:"order_date"`
	BatchNo       string `json:"batch_no"`

	SellerState string `json:"seller_state"`

	ClientName  string `json:"client_name"`
	ClientType  string `json:"client_type"`
	ClientState string `json:"client_state"`
	ClientGstin string `json:"client_gstin"`

	Lines    []InvoiceLineView `json:"lines"`
	Subtotal string            `json:"subtotal"`
	TaxLines []InvoiceTaxLine  `json:"tax_lines"`

	GrandTotal    string `json:"grand_total"`
	Paid          string `json:"paid"`
	Due           string `json:"due"`
	AmountInWords string `json:"amount_in_words"`

	Status     string `json:"status"`
	IsOverpaid bool   `json:"is_overpaid"`
}

type InvoiceLineView struct {
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type InvoiceTaxLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// RenderInvoiceData projects an order into its printable invoice form.
func RenderInvoiceData(order *Order) InvoiceView {
	totals := order.Totals()

	lines := make([]InvoiceLineView, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			continue
		}
		lines = append(lines, InvoiceLineView{
			Item:      string(item.Item),
			Quantity:  item.Quantity,
			UnitPrice: utils.FormatCurrency(item.UnitPrice),
			LineTotal: utils.FormatCurrency(item.LineTotal),
		})
	}

	var taxLines []InvoiceTaxLine
	switch totals.Tax.Mode {
	case TaxModeIntraState:
		taxLines = append(taxLines,
			InvoiceTaxLine{
				Label:  fmt.Sprintf("CGST @ %s%%", CgstRate.Mul(oneHundred).String()),
				Amount: utils.FormatCurrency(*totals.Tax.Cgst),
			},
			InvoiceTaxLine{
				Label:  fmt.Sprintf("SGST @ %s%%", SgstRate.Mul(oneHundred).String()),
				Amount: utils.FormatCurrency(*totals.Tax.Sgst),
			},
		)
	case TaxModeInterState:
		taxLines = append(taxLines, InvoiceTaxLine{
			Label:  fmt.Sprintf("IGST @ %s%%", IgstRate.Mul(oneHundred).String()),
			Amount: utils.FormatCurrency(*totals.Tax.Igst),
		})
	}

	return InvoiceView{
		InvoiceNumber: fmt.Sprintf("KV-%05d", order.ID),
		OrderDate:     order.OrderDate.Format("02-01-2006"),
		BatchNo:       order.BatchNo,
		SellerState:   config.SellerState(),
		ClientName:    order.ClientName,
		ClientType:    string(order.ClientType),
		ClientState:   order.ClientState,
		ClientGstin:   order.ClientGstin,
		Lines:         lines,
		Subtotal:      utils.FormatCurrency(totals.Subtotal),
		TaxLines:      taxLines,
		GrandTotal:    utils.FormatCurrency(totals.GrandTotal),
		Paid:          utils.FormatCurrency(totals.Paid),
		Due:           utils.FormatCurrency(totals.Due),
		AmountInWords: utils.AmountInWords(totals.GrandTotal),
		Status:        string(order.CurrentStatus),
		IsOverpaid:    totals.IsOverpaid,
	}
}
