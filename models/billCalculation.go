package models

import (
	"github.com/mmsoftware/billing_backend/utils"
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// Pure bill arithmetic. No DB access here: everything operates on the
// price/tax snapshots captured on the bill items, in fixed-point decimal.

// CalculateBillItemAmounts returns lineTotal = unitPrice * qty and
// gstAmount = lineTotal * taxPercent / 100. A product without a configured
// tax percent is taxed at zero.
func CalculateBillItemAmounts(unitPrice decimal.Decimal, taxPercent *decimal.Decimal, quantity int) (lineTotal decimal.Decimal, gstAmount decimal.Decimal) {
	lineTotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	gstPercent := decimal.Zero
	if taxPercent != nil {
		gstPercent = *taxPercent
	}
	gstAmount = lineTotal.Mul(gstPercent).DivRound(decimalOneHundred, 4)
	return lineTotal, gstAmount
}

// CalculateBillTotals sums the per-line amounts and applies the flat
// discount: total = subtotal - discount + gst. Fails when the discount is
// negative or exceeds the subtotal.
func CalculateBillTotals(items []BillItem, discount decimal.Decimal) (subtotal decimal.Decimal, gstAmount decimal.Decimal, total decimal.Decimal, err error) {
	subtotal = decimal.Zero
	gstAmount = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
		gstAmount = gstAmount.Add(item.GstAmount)
	}

	if discount.IsNegative() {
		return decimal.Zero, decimal.Zero, decimal.Zero, utils.InvalidArgumentError("discount cannot be negative")
	}
	if discount.GreaterThan(subtotal) {
		return decimal.Zero, decimal.Zero, decimal.Zero, utils.InvalidArgumentError("discount cannot exceed subtotal")
	}

	total = subtotal.Sub(discount).Add(gstAmount)
	return subtotal, gstAmount, total, nil
}
