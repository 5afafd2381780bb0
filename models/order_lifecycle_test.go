package models_test

import (
	"testing"

	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Walks an order from creation to settlement: a Maharashtra distributor
// buys two 15kg packs at 1575, pays in two equal installments, and a
// third payment bounces off the settled ledger.
func TestOrderLifecycle_TwoInstallments(t *testing.T) {
	items := []models.OrderItem{line(models.Pack15kg, "1575", 2)}
	var ledger []models.Payment

	totals := models.ComputeTotals(items, ledger, "Maharashtra", "Maharashtra")
	require.Equal(t, "3150", totals.Subtotal.String())
	require.Equal(t, models.TaxModeIntraState, totals.Tax.Mode)
	require.Equal(t, "189", totals.Tax.Cgst.String())
	require.Equal(t, "189", totals.Tax.Sgst.String())
	require.Equal(t, "3528", totals.GrandTotal.String())
	require.Equal(t, models.OrderStatusPending, models.DeriveStatus(totals))

	installment := decimal.RequireFromString("1764")

	// first installment
	require.NoError(t, models.ValidatePaymentAmount(installment, totals, halfPaisa))
	ledger = append(ledger, models.Payment{Amount: installment})
	totals = models.ComputeTotals(items, ledger, "Maharashtra", "Maharashtra")
	require.Equal(t, "1764", totals.Due.String())
	status, manual := models.NextStatusAfterPayment(models.OrderStatusPending, false, totals)
	require.Equal(t, models.OrderStatusPartiallyPaid, status)
	require.False(t, manual)

	// second installment settles the order
	require.NoError(t, models.ValidatePaymentAmount(installment, totals, halfPaisa))
	ledger = append(ledger, models.Payment{Amount: installment})
	totals = models.ComputeTotals(items, ledger, "Maharashtra", "Maharashtra")
	require.True(t, totals.IsComplete)
	require.True(t, totals.Due.IsZero())
	status, manual = models.NextStatusAfterPayment(status, manual, totals)
	require.Equal(t, models.OrderStatusComplete, status)
	require.False(t, manual)

	// ledger is closed
	err := models.ValidatePaymentAmount(decimal.RequireFromString("0.01"), totals, halfPaisa)
	require.ErrorIs(t, err, utils.ErrorOverpaymentRejected)
}

// Shipping before settlement must not be overwritten by a partial
// payment, but full settlement always wins.
func TestOrderLifecycle_ShippedOverrideThenSettled(t *testing.T) {
	items := []models.OrderItem{line(models.Pack5kg, "540", 10)} // subtotal 5400
	var ledger []models.Payment

	totals := models.ComputeTotals(items, ledger, "Rajasthan", "Maharashtra")
	require.Equal(t, models.TaxModeInterState, totals.Tax.Mode)
	require.Equal(t, "648", totals.Tax.Igst.String())
	require.Equal(t, "6048", totals.GrandTotal.String())

	// operator marks shipped, then a partial payment lands
	ledger = append(ledger, models.Payment{Amount: decimal.RequireFromString("3000")})
	totals = models.ComputeTotals(items, ledger, "Rajasthan", "Maharashtra")
	status, manual := models.NextStatusAfterPayment(models.OrderStatusShipped, true, totals)
	require.Equal(t, models.OrderStatusShipped, status)
	require.True(t, manual)

	// the settling payment clears the override
	ledger = append(ledger, models.Payment{Amount: decimal.RequireFromString("3048")})
	totals = models.ComputeTotals(items, ledger, "Rajasthan", "Maharashtra")
	status, manual = models.NextStatusAfterPayment(status, manual, totals)
	require.Equal(t, models.OrderStatusComplete, status)
	require.False(t, manual)
}
