package models

import "errors"

type ClientType string

const (
	ClientTypeDistributor ClientType = "distributor"
	ClientTypeFranchise   ClientType = "franchise"
)

func (t ClientType) Valid() bool {
	return t == ClientTypeDistributor || t == ClientTypeFranchise
}

// convert input to enum type
func (t *ClientType) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return errors.New("client type must be string")
	}
	switch ClientType(s) {
	case ClientTypeDistributor:
		*t = ClientTypeDistributor
	case ClientTypeFranchise:
		*t = ClientTypeFranchise
	default:
		return errors.New("invalid client type")
	}
	return nil
}

type OrderStatus string

const (
	// payment-derived statuses
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusPartiallyPaid OrderStatus = "partially_paid"
	OrderStatusComplete      OrderStatus = "complete"
	// operator-set statuses
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPartiallyPaid, OrderStatusComplete,
		OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Manual reports whether the status is operator-set rather than derived
// from the payment ledger.
func (s OrderStatus) Manual() bool {
	return s == OrderStatusShipped || s == OrderStatusCancelled
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	v, err := unquote(b)
	if err != nil {
		return errors.New("order status must be string")
	}
	status := OrderStatus(v)
	if !status.Valid() {
		return errors.New("invalid order status")
	}
	*s = status
	return nil
}

// TaxMode tags which GST branch applies to an order. Exactly one branch is
// ever populated; callers must check the mode instead of testing tax
// amounts against zero.
type TaxMode string

const (
	TaxModeIntraState TaxMode = "CGST_SGST"
	TaxModeInterState TaxMode = "IGST"
)

// ItemName is a key into the fixed pack-size catalog. Clients price every
// catalog item they can order; free-text item names are not accepted.
type ItemName string

const (
	Pack250g ItemName = "250g"
	Pack500g ItemName = "500g"
	Pack1kg  ItemName = "1kg"
	Pack5kg  ItemName = "5kg"
	Pack15kg ItemName = "15kg"
	Pack30kg ItemName = "30kg"
)

var itemCatalog = []ItemName{Pack250g, Pack500g, Pack1kg, Pack5kg, Pack15kg, Pack30kg}

func ItemCatalog() []ItemName {
	out := make([]ItemName, len(itemCatalog))
	copy(out, itemCatalog)
	return out
}

func (i ItemName) Valid() bool {
	for _, item := range itemCatalog {
		if i == item {
			return true
		}
	}
	return false
}

func (i *ItemName) UnmarshalJSON(b []byte) error {
	v, err := unquote(b)
	if err != nil {
		return errors.New("item must be string")
	}
	item := ItemName(v)
	if !item.Valid() {
		return errors.New("unknown catalog item")
	}
	*i = item
	return nil
}

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleClient UserRole = "client"
)

func unquote(b []byte) (string, error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return "", errors.New("not a JSON string")
	}
	return string(b[1 : len(b)-1]), nil
}
