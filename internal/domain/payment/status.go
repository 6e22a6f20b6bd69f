package payment

import (
	"strings"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

// ===============================
// Payment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPartial   Status = "PARTIAL"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

// OpenStatuses are the statuses an appointment cancellation sweeps to
// CANCELLED.
var OpenStatuses = []string{
	string(StatusPending),
	string(StatusPartial),
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusPartial, StatusPaid, StatusCancelled, StatusRefunded:
		return s, nil
	}
	return "", httperr.ErrInvalid("invalid_payment_status", "Unknown payment status")
}

func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusPartial
}

// ===============================
// Payment Method
// ===============================

type Method string

const (
	MethodCash   Method = "CASH"
	MethodDebit  Method = "DEBIT"
	MethodCredit Method = "CREDIT"
	MethodPix    Method = "PIX"
	MethodLink   Method = "LINK"
	MethodWallet Method = "WALLET"
)

var AllMethods = []Method{
	MethodCash,
	MethodDebit,
	MethodCredit,
	MethodPix,
	MethodLink,
	MethodWallet,
}

func ParseMethod(raw string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range AllMethods {
		if m == known {
			return m, nil
		}
	}
	return "", httperr.ErrInvalid("invalid_payment_method", "Unknown payment method")
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if !current.IsOpen() {
		return httperr.ErrRejected("invalid_payment_state", "Only pending or partial payments can be confirmed")
	}
	return nil
}

func CanRefund(current Status) error {
	if current != StatusPaid && current != StatusPartial {
		return httperr.ErrRejected("invalid_payment_state", "Only paid or partial payments can be refunded")
	}
	return nil
}

func CanChangeMethod(current Status) error {
	if !current.IsOpen() {
		return httperr.ErrRejected("invalid_payment_state", "Payment method can only change before confirmation")
	}
	return nil
}
