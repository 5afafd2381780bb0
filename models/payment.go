package models

import (
	"context"
	"fmt"
	"time"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payment is one append-only ledger entry. There is deliberately no
// update or delete path for payments anywhere in this codebase.
type Payment struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OrderId     int             `gorm:"index;not null" json:"order_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPayment struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	// PaymentDate defaults to the time of recording; callers may backdate
	// for imports.
	PaymentDate *time.Time `json:"payment_date"`
}

// ValidatePaymentAmount enforces the ledger contracts against the order's
// current totals. Pure, so the rules are testable without a database:
//
//   - amount must be strictly positive (refunds are not modeled);
//   - a settled order accepts no further payments;
//   - a payment may not push paid past the grand total by more than the
//     configured tolerance.
//
// The amount is judged as it will be stored: rounded to 2 decimals. A raw
// amount inside tolerance whose rounding lands past it is still rejected.
func ValidatePaymentAmount(amount decimal.Decimal, totals OrderTotals, tolerance decimal.Decimal) error {
	amount = amount.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return utils.ErrorInvalidAmount
	}
	if totals.IsComplete {
		return utils.ErrorOverpaymentRejected
	}
	if amount.GreaterThan(totals.Due.Add(tolerance)) {
		return utils.ErrorOverpaymentRejected
	}
	return nil
}

func buildPayment(orderId int, input NewPayment, totals OrderTotals) (*Payment, error) {
	amount := input.Amount.Round(2)
	if err := ValidatePaymentAmount(amount, totals, config.OverpayTolerance()); err != nil {
		return nil, err
	}
	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}
	return &Payment{
		OrderId:     orderId,
		Amount:      amount,
		PaymentDate: paymentDate,
	}, nil
}

// RecordPayment appends a payment to an order's ledger and recomputes the
// derived status, as one atomic unit per order. The order row is locked
// FOR UPDATE for the duration, so concurrent submissions against the same
// order serialize; different orders proceed in parallel.
//
// A redis lock is taken first when redis is configured — a best-effort
// cross-instance optimization only; correctness rests on the row lock.
func RecordPayment(ctx context.Context, orderId int, input NewPayment) (*Order, error) {
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, fmt.Sprintf("payment:%d", orderId), 30*time.Second, nil)
		if err == nil {
			defer func() { _ = lock.Release(ctx) }()
		} else if err != redislock.ErrNotObtained {
			logger := config.GetLogger()
			config.LogError(logger, "payment.go", "RecordPayment", "redislock.Obtain", orderId, err)
		}
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

	if order.CurrentStatus == OrderStatusCancelled {
		return nil, utils.ErrorOrderCancelled
	}

	// Load items and ledger inside the transaction so totals reflect
	// exactly the state being locked.
	if err := tx.WithContext(ctx).Where("order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", order.ID).Order("id asc").Find(&order.Payments).Error; err != nil {
		return nil, err
	}

	payment, err := buildPayment(order.ID, input, order.Totals())
	if err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	order.Payments = append(order.Payments, *payment)

	status, manual := NextStatusAfterPayment(order.CurrentStatus, order.StatusIsManual, order.Totals())
	if status != order.CurrentStatus || manual != order.StatusIsManual {
		if err := tx.WithContext(ctx).Model(&Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"current_status":   status,
				"status_is_manual": manual,
			}).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetOrder(ctx, order.ID)
}
