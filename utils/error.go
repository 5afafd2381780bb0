package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// Domain error kinds. Every operation returns one of these (or wraps it)
// for expected failures; nothing in the core panics for bad input.
var (
	ErrorInvalidAmount       = errors.New("invalid payment amount")
	ErrorOverpaymentRejected = errors.New("payment exceeds amount due")
	ErrorClientNotFound      = errors.New("client not found")
	ErrorOrderNotFound       = errors.New("order not found")
	ErrorInvalidLineItem     = errors.New("invalid line item")
	ErrorOrderCancelled      = errors.New("order is cancelled")
	ErrorInvalidStatus       = errors.New("invalid order status")
)
