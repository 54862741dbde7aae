package models_test

import (
	"testing"

	"github.com/mmsoftware/billing_backend/models"
	"github.com/mmsoftware/billing_backend/utils"
	"github.com/shopspring/decimal"
)

func TestCreatePaymentSettlesBill(t *testing.T) {
	ctx := setupBillingTest(t)

	tax := decimal.NewFromInt(18)
	widget := seedProduct(t, ctx, "Widget", 100, &tax, 10)
	customer := seedCustomer(t, ctx, "Customer A")

	bill, err := models.CreateBill(ctx, &models.NewBill{
		CustomerId: customer.ID,
		Discount:   decimal.NewFromInt(30),
		Items:      []models.NewBillItem{{ProductId: widget.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	payment, err := models.CreatePayment(ctx, &models.NewPayment{
		BillId:      bill.ID,
		PaymentMode: "Cash",
		Amount:      decimal.NewFromInt(324),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if payment.CurrentStatus != models.PaymentStatusPaid {
		t.Fatalf("expected payment status Paid; got %s", payment.CurrentStatus)
	}
	if payment.BillNumber != bill.BillNumber {
		t.Fatalf("expected payment linked to %s; got %s", bill.BillNumber, payment.BillNumber)
	}

	fetched, err := models.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill: %v", err)
	}
	if fetched.CurrentStatus != models.BillStatusPaid {
		t.Fatalf("expected bill flipped to Paid; got %s", fetched.CurrentStatus)
	}
	// Settlement must not touch stock.
	if got := productStock(t, ctx, widget.ID); got != 7 {
		t.Fatalf("expected stock to stay at 7; got %d", got)
	}

	byBill, err := models.GetPaymentByBillId(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetPaymentByBillId: %v", err)
	}
	if byBill.ID != payment.ID || byBill.Amount.Cmp(decimal.NewFromInt(324)) != 0 {
		t.Fatalf("unexpected payment lookup result: %+v", byBill)
	}

	// A paid bill accepts no further payments, edits or cancellation.
	_, err = models.CreatePayment(ctx, &models.NewPayment{
		BillId:      bill.ID,
		PaymentMode: "Cash",
		Amount:      decimal.NewFromInt(324),
	})
	if utils.KindOf(err) != utils.ErrKindInvalidState {
		t.Fatalf("expected InvalidState for second payment; got %v", err)
	}
	_, err = models.UpdateBill(ctx, bill.ID, &models.NewBill{
		CustomerId: customer.ID,
		Items:      []models.NewBillItem{{ProductId: widget.ID, Quantity: 1}},
	})
	if utils.KindOf(err) != utils.ErrKindInvalidState {
		t.Fatalf("expected InvalidState editing a paid bill; got %v", err)
	}
	if _, err := models.CancelBill(ctx, bill.ID); utils.KindOf(err) != utils.ErrKindInvalidState {
		t.Fatalf("expected InvalidState cancelling a paid bill; got %v", err)
	}
	if got := productStock(t, ctx, widget.ID); got != 7 {
		t.Fatalf("failed cancel must not restock; got %d", got)
	}
}

func TestCreatePaymentAmountMustMatchTotal(t *testing.T) {
	ctx := setupBillingTest(t)

	widget := seedProduct(t, ctx, "Widget", 100, nil, 10)
	customer := seedCustomer(t, ctx, "Customer A")

	bill, err := models.CreateBill(ctx, &models.NewBill{
		CustomerId: customer.ID,
		Items:      []models.NewBillItem{{ProductId: widget.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	for _, amount := range []int64{199, 201} {
		_, err := models.CreatePayment(ctx, &models.NewPayment{
			BillId:      bill.ID,
			PaymentMode: "Card",
			Amount:      decimal.NewFromInt(amount),
		})
		if utils.KindOf(err) != utils.ErrKindInvalidArgument {
			t.Fatalf("expected InvalidArgument for amount %d; got %v", amount, err)
		}
	}

	fetched, err := models.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill: %v", err)
	}
	if fetched.CurrentStatus != models.BillStatusActive {
		t.Fatalf("rejected payments must leave the bill Active; got %s", fetched.CurrentStatus)
	}
}

func TestCreatePaymentOnCancelledBill(t *testing.T) {
	ctx := setupBillingTest(t)

	widget := seedProduct(t, ctx, "Widget", 100, nil, 10)
	customer := seedCustomer(t, ctx, "Customer A")

	bill, err := models.CreateBill(ctx, &models.NewBill{
		CustomerId: customer.ID,
		Items:      []models.NewBillItem{{ProductId: widget.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if _, err := models.CancelBill(ctx, bill.ID); err != nil {
		t.Fatalf("CancelBill: %v", err)
	}

	_, err = models.CreatePayment(ctx, &models.NewPayment{
		BillId:      bill.ID,
		PaymentMode: "Cash",
		Amount:      bill.Total,
	})
	if utils.KindOf(err) != utils.ErrKindInvalidState {
		t.Fatalf("expected InvalidState paying a cancelled bill; got %v", err)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	ctx := setupBillingTest(t)

	widget := seedProduct(t, ctx, "Widget", 100, nil, 10)
	customer := seedCustomer(t, ctx, "Customer A")

	bill, err := models.CreateBill(ctx, &models.NewBill{
		CustomerId: customer.ID,
		Items:      []models.NewBillItem{{ProductId: widget.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	_, err = models.CreatePayment(ctx, &models.NewPayment{
		BillId:      bill.ID,
		PaymentMode: "Barter",
		Amount:      bill.Total,
	})
	if utils.KindOf(err) != utils.ErrKindInvalidArgument {
		t.Fatalf("expected InvalidArgument for unknown payment mode; got %v", err)
	}

	_, err = models.CreatePayment(ctx, &models.NewPayment{
		BillId:      bill.ID + 100,
		PaymentMode: "Cash",
		Amount:      bill.Total,
	})
	if utils.KindOf(err) != utils.ErrKindNotFound {
		t.Fatalf("expected NotFound for missing bill; got %v", err)
	}

	if _, err := models.GetPaymentByBillId(ctx, bill.ID); utils.KindOf(err) != utils.ErrKindNotFound {
		t.Fatalf("expected NotFound before settlement; got %v", err)
	}
}
