package utils_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mmsoftware/billing_backend/utils"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want utils.ErrKind
	}{
		{utils.NotFoundError("bill not found with id: %d", 5), utils.ErrKindNotFound},
		{utils.InsufficientStockError("Widget", 2), utils.ErrKindInsufficientStock},
		{utils.InvalidStateError("bill already cancelled"), utils.ErrKindInvalidState},
		{utils.InvalidArgumentError("discount cannot be negative"), utils.ErrKindInvalidArgument},
		{gorm.ErrRecordNotFound, utils.ErrKindNotFound},
		{errors.New("boom"), utils.ErrKindInternal},
	}
	for _, c := range cases {
		if got := utils.KindOf(c.err); got != c.want {
			t.Fatalf("KindOf(%v) = %s; want %s", c.err, got, c.want)
		}
	}
	if utils.KindOf(nil) != "" {
		t.Fatalf("KindOf(nil) should be empty")
	}
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("create bill: %w", utils.InsufficientStockError("Widget", 2))
	if utils.KindOf(wrapped) != utils.ErrKindInsufficientStock {
		t.Fatalf("expected wrapped error to keep its kind")
	}
}

func TestInsufficientStockErrorDetail(t *testing.T) {
	err := utils.InsufficientStockError("Widget", 2)
	if err.Error() != "only 2 units available for Widget" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	var appErr *utils.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *utils.Error")
	}
	if appErr.ProductName != "Widget" || appErr.AvailableQty != 2 {
		t.Fatalf("expected shortfall detail to be carried; got %+v", appErr)
	}
}
