package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmsoftware/billing_backend/config"
	"github.com/mmsoftware/billing_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment settles exactly one bill in full. The unique index on BillId is the
// hard backstop behind the duplicate check; amount must equal the bill total.
type Payment struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BillId         int             `gorm:"not null;uniqueIndex" json:"bill_id"`
	PaymentNumber  string          `gorm:"size:255;not null;uniqueIndex" json:"payment_number"`
	PaymentMode    PaymentMode     `gorm:"size:20;not null" json:"payment_mode"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	CurrentStatus  PaymentStatus   `gorm:"size:20;not null" json:"current_status"`
	PaymentDate    time.Time       `gorm:"not null" json:"payment_date"`
	TransactionRef *string         `gorm:"size:100" json:"transaction_ref"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPayment struct {
	BillId         int             `json:"bill_id" binding:"required" validate:"required,gt=0"`
	PaymentMode    string          `json:"payment_mode" binding:"required" validate:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	TransactionRef *string         `json:"transaction_ref"`
}

type PaymentResponse struct {
	ID             int             `json:"id"`
	BillId         int             `json:"bill_id"`
	BillNumber     string          `json:"bill_number"`
	PaymentNumber  string          `json:"payment_number"`
	PaymentMode    PaymentMode     `json:"payment_mode"`
	Amount         decimal.Decimal `json:"amount"`
	CurrentStatus  PaymentStatus   `json:"current_status"`
	PaymentDate    time.Time       `json:"payment_date"`
	TransactionRef *string         `json:"transaction_ref"`
}

func mapPaymentResponse(payment *Payment, billNumber string) *PaymentResponse {
	return &PaymentResponse{
		ID:             payment.ID,
		BillId:         payment.BillId,
		BillNumber:     billNumber,
		PaymentNumber:  payment.PaymentNumber,
		PaymentMode:    payment.PaymentMode,
		Amount:         payment.Amount,
		CurrentStatus:  payment.CurrentStatus,
		PaymentDate:    payment.PaymentDate,
		TransactionRef: payment.TransactionRef,
	}
}

func formatPaymentNumber(billNumber string) string {
	return fmt.Sprintf("PAY-%s", billNumber)
}

// CreatePayment records the settlement of a bill and flips the bill to Paid in
// the same transaction. The bill row is locked first so a concurrent cancel or
// second payment serializes behind it.
func CreatePayment(ctx context.Context, input *NewPayment) (*PaymentResponse, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	mode, err := ParsePaymentMode(input.PaymentMode)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	bill, err := fetchBillForChange(tx, input.BillId)
	if err != nil {
		return nil, err
	}
	if bill.CurrentStatus != BillStatusActive {
		return nil, utils.InvalidStateError("payment not allowed for bill with status: %s", bill.CurrentStatus)
	}

	var existingCount int64
	if err := tx.Model(&Payment{}).Where("bill_id = ?", bill.ID).Count(&existingCount).Error; err != nil {
		return nil, err
	}
	if existingCount > 0 {
		return nil, utils.InvalidStateError("payment already exists for this bill")
	}

	if !input.Amount.Equal(bill.Total) {
		return nil, utils.InvalidArgumentError("payment amount must be equal to bill total")
	}

	payment := Payment{
		BillId:         bill.ID,
		PaymentNumber:  formatPaymentNumber(bill.BillNumber),
		PaymentMode:    mode,
		Amount:         input.Amount,
		CurrentStatus:  PaymentStatusPaid,
		PaymentDate:    time.Now().UTC(),
		TransactionRef: input.TransactionRef,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(bill).Update("current_status", BillStatusPaid).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	_ = config.DeleteRedisKey(billCacheKey(bill.ID))

	return mapPaymentResponse(&payment, bill.BillNumber), nil
}

// GetPaymentByBillId looks up the settlement record linked to a bill.
func GetPaymentByBillId(ctx context.Context, billId int) (*PaymentResponse, error) {
	db := config.GetDB()

	var payment Payment
	err := db.WithContext(ctx).Where("bill_id = ?", billId).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("payment not found for bill id: %d", billId)
		}
		return nil, err
	}

	var bill Bill
	if err := db.WithContext(ctx).Select("bill_number").First(&bill, payment.BillId).Error; err != nil {
		return nil, err
	}
	return mapPaymentResponse(&payment, bill.BillNumber), nil
}
