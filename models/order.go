package models

import (
	"context"
	"time"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order snapshots the client's identity and jurisdiction at creation.
// Historical invoices must not change when client master data does, so
// everything an invoice prints lives on the order row, not behind a
// live client reference.
type Order struct {
	ID             int         `gorm:"primary_key" json:"id"`
	ClientId       int         `gorm:"index;not null" json:"client_id"`
	ClientName     string      `gorm:"size:255;not null" json:"client_name"`
	ClientType     ClientType  `gorm:"type:enum('distributor','franchise');not null" json:"client_type"`
	ClientState    string      `gorm:"size:100;not null" json:"client_state"`
	ClientGstin    string      `gorm:"size:15" json:"client_gstin"`
	OrderDate      time.Time   `gorm:"not null" json:"order_date"`
	BatchNo        string      `gorm:"size:100" json:"batch_no"`
	CurrentStatus  OrderStatus `gorm:"type:enum('pending','partially_paid','complete','shipped','cancelled');not null" json:"current_status"`
	StatusIsManual bool        `gorm:"not null;default:false" json:"status_is_manual"`
	Items          []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
	Payments       []Payment   `gorm:"foreignKey:OrderId" json:"payments"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type OrderItem struct {
	ID        int             `gorm:"primary_key" json:"id"`
	OrderId   int             `gorm:"index;not null" json:"order_id"`
	Item      ItemName        `gorm:"size:20;not null" json:"item"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewOrder struct {
	ClientId       int            `json:"client_id" binding:"required"`
	OrderDate      *time.Time     `json:"order_date"`
	BatchNo        string         `json:"batch_no"`
	Items          []NewOrderItem `json:"items" binding:"required"`
	InitialPayment *NewPayment    `json:"initial_payment"`
}

type NewOrderItem struct {
	Item     ItemName `json:"item" binding:"required"`
	Quantity int      `json:"quantity"`
	// UnitPrice overrides the client's price list when set.
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// Totals recomputes the derived totals from this order's items and ledger.
func (o *Order) Totals() OrderTotals {
	return ComputeTotals(o.Items, o.Payments, o.ClientState, config.SellerState())
}

// CreateOrder validates the input, snapshots client data and unit prices,
// and persists the order (plus the optional initial payment) in one
// transaction. Zero-quantity lines are dropped; at least one line must
// carry quantity > 0.
func CreateOrder(ctx context.Context, input *NewOrder) (*Order, error) {
	client, err := GetClient(ctx, input.ClientId)
	if err != nil {
		return nil, err
	}

	items, err := buildOrderItems(client, input.Items)
	if err != nil {
		return nil, err
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := Order{
		ClientId:      client.ID,
		ClientName:    client.Name,
		ClientType:    client.Type,
		ClientState:   client.State,
		ClientGstin:   client.Gstin,
		OrderDate:     orderDate,
		BatchNo:       input.BatchNo,
		CurrentStatus: OrderStatusPending,
		Items:         items,
	}

	db := config.GetDB()
	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}

	if input.InitialPayment != nil {
		totals := order.Totals()
		payment, err := buildPayment(order.ID, *input.InitialPayment, totals)
		if err != nil {
			return nil, err
		}
		if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
			return nil, err
		}
		order.Payments = append(order.Payments, *payment)

		status, manual := NextStatusAfterPayment(order.CurrentStatus, order.StatusIsManual, order.Totals())
		if err := tx.WithContext(ctx).Model(&Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"current_status":   status,
				"status_is_manual": manual,
			}).Error; err != nil {
			return nil, err
		}
		order.CurrentStatus = status
		order.StatusIsManual = manual
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetOrder(ctx, order.ID)
}

func buildOrderItems(client *Client, inputs []NewOrderItem) ([]OrderItem, error) {
	var items []OrderItem
	for _, in := range inputs {
		if !in.Item.Valid() || in.Quantity < 0 {
			return nil, utils.ErrorInvalidLineItem
		}
		if in.Quantity == 0 {
			continue
		}
		price := decimal.Zero
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		} else {
			var err error
			price, err = client.PriceFor(in.Item)
			if err != nil {
				return nil, err
			}
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, utils.ErrorInvalidLineItem
		}
		price = price.Round(2)
		items = append(items, OrderItem{
			Item:      in.Item,
			UnitPrice: price,
			Quantity:  in.Quantity,
			LineTotal: price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		})
	}
	if len(items) == 0 {
		return nil, utils.ErrorInvalidLineItem
	}
	return items, nil
}

func GetOrder(ctx context.Context, id int) (*Order, error) {
	db := config.GetDB()
	var order Order
	err := db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			// ledger preserves insertion order for audit display
			return db.Order("payments.id asc")
		}).
		First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

type OrderFilter struct {
	ClientType *ClientType
	ClientName string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ListOrders returns orders newest first (dashboard display order).
func ListOrders(ctx context.Context, filter OrderFilter) ([]*Order, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.id asc")
		}).
		Order("created_at desc, id desc")

	if filter.ClientType != nil {
		query = query.Where("client_type = ?", *filter.ClientType)
	}
	if filter.ClientName != "" {
		query = query.Where("client_name = ?", filter.ClientName)
	}
	if filter.DateFrom != nil {
		query = query.Where("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("order_date <= ?", *filter.DateTo)
	}

	var orders []*Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
