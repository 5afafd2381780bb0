package models

import (
	"context"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeriveStatus maps ledger totals to a payment-derived status.
func DeriveStatus(totals OrderTotals) OrderStatus {
	switch {
	case totals.IsComplete:
		return OrderStatusComplete
	case totals.Paid.GreaterThan(decimal.Zero):
		return OrderStatusPartiallyPaid
	default:
		return OrderStatusPending
	}
}

// NextStatusAfterPayment resolves the precedence between operator-set and
// payment-derived statuses after a payment lands:
//
//   - a payment that settles the order always forces "complete", clearing
//     any manual override;
//   - otherwise a manual status ("shipped", "cancelled") is sticky;
//   - otherwise the status is re-derived from the ledger.
//
// Returns the new status and whether it is still a manual override.
func NextStatusAfterPayment(current OrderStatus, manual bool, totals OrderTotals) (OrderStatus, bool) {
	if totals.IsComplete {
		return OrderStatusComplete, false
	}
	if manual {
		return current, true
	}
	return DeriveStatus(totals), false
}

// SetOrderStatus records an operator override. Only the manual statuses
// ("shipped", "cancelled") can be set this way; payment-derived statuses
// come from the ledger alone. Completed orders are terminal.
func SetOrderStatus(ctx context.Context, orderId int, status OrderStatus) (*Order, error) {
	if !status.Manual() {
		return nil, utils.ErrorInvalidStatus
	}

	db := config.GetDB()
	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	var order Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, orderId).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorOrderNotFound
		}
		return nil, err
	}

	if order.CurrentStatus == OrderStatusComplete {
		return nil, utils.ErrorInvalidStatus
	}

	order.CurrentStatus = status
	order.StatusIsManual = true
	if err := tx.WithContext(ctx).Model(&Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"current_status":   order.CurrentStatus,
			"status_is_manual": order.StatusIsManual,
		}).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetOrder(ctx, order.ID)
}
