package models

import (
	"errors"

	"github.com/mmsoftware/billing_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The stock ledger is the only legal mutator of Product.StockQuantity.
//
// Both operations take the caller's open transaction and lock the product row
// (SELECT ... FOR UPDATE) for the duration of the check-and-mutate, so two
// concurrent bill operations against the same product serialize at the row and
// cannot jointly oversell.

// ReserveStock decrements stock by qty on behalf of a bill item and returns
// the product's post-reservation state. The caller owns commit/rollback.
func ReserveStock(tx *gorm.DB, productId int, qty int) (*Product, error) {
	if qty <= 0 {
		return nil, utils.InvalidArgumentError("quantity must be greater than zero")
	}

	var product Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = true", productId).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("product not found with id: %d", productId)
		}
		return nil, err
	}

	if qty > product.StockQuantity {
		return nil, utils.InsufficientStockError(product.Name, product.StockQuantity)
	}

	newQty := product.StockQuantity - qty
	if err := tx.Model(&product).Update("stock_quantity", newQty).Error; err != nil {
		return nil, err
	}
	product.StockQuantity = newQty
	return &product, nil
}

// ReleaseStock undoes a prior reservation (cancellation, item replacement
// during edit). Inactive products still accept releases; only a deleted row
// is an error.
func ReleaseStock(tx *gorm.DB, productId int, qty int) error {
	if qty <= 0 {
		return utils.InvalidArgumentError("quantity must be greater than zero")
	}

	var product Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productId).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("product not found with id: %d", productId)
		}
		return err
	}

	return tx.Model(&product).Update("stock_quantity", product.StockQuantity+qty).Error
}
