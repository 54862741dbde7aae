package models

import (
	"github.com/mmsoftware/billing_backend/utils"
)

type BillStatus string

const (
	BillStatusActive    BillStatus = "Active"
	BillStatusPaid      BillStatus = "Paid"
	BillStatusCancelled BillStatus = "Cancelled"
)

// Paid and Cancelled are terminal; only Active bills may change.
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusPaid || s == BillStatusCancelled
}

type PaymentStatus string

// A payment is born Paid; no other status is ever written.
const (
	PaymentStatusPaid PaymentStatus = "Paid"
)

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeCard         PaymentMode = "Card"
	PaymentModeUpi          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "BankTransfer"
	PaymentModeCheque       PaymentMode = "Cheque"
)

func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentModeCash, PaymentModeCard, PaymentModeUpi, PaymentModeBankTransfer, PaymentModeCheque:
		return PaymentMode(s), nil
	}
	return "", utils.InvalidArgumentError("invalid payment mode: %s", s)
}
