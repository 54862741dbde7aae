package models

import (
	"context"
	"time"

	"github.com/mmsoftware/billing_backend/config"
	"github.com/mmsoftware/billing_backend/utils"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int              `gorm:"primary_key" json:"id"`
	Name         string           `gorm:"size:100;not null;uniqueIndex" json:"name" binding:"required"`
	Sku          string           `gorm:"size:100" json:"sku"`
	SellingPrice decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"selling_price" binding:"required"`
	TaxPercent   *decimal.Decimal `gorm:"type:decimal(20,4);default:null" json:"tax_percent"`
	// StockQuantity is mutated only through ReserveStock/ReleaseStock.
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name          string           `json:"name" binding:"required" validate:"required"`
	Sku           string           `json:"sku"`
	SellingPrice  decimal.Decimal  `json:"selling_price" binding:"required"`
	TaxPercent    *decimal.Decimal `json:"tax_percent"`
	StockQuantity int              `json:"stock_quantity"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProduct) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Product](ctx, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Product](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if input.SellingPrice.IsNegative() {
		return utils.InvalidArgumentError("selling price cannot be negative")
	}
	if input.TaxPercent != nil &&
		(input.TaxPercent.IsNegative() || input.TaxPercent.GreaterThan(decimal.NewFromInt(100))) {
		return utils.InvalidArgumentError("tax percent must be between 0 and 100")
	}
	if input.StockQuantity < 0 {
		return utils.InvalidArgumentError("stock quantity cannot be negative")
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	product := Product{
		Name:          input.Name,
		Sku:           input.Sku,
		SellingPrice:  input.SellingPrice,
		TaxPercent:    input.TaxPercent,
		StockQuantity: input.StockQuantity,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct changes catalog fields only. StockQuantity is owned by the
// billing engine and is deliberately not updatable here.
func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(product).Updates(map[string]interface{}{
		"Name":         input.Name,
		"Sku":          input.Sku,
		"SellingPrice": input.SellingPrice,
		"TaxPercent":   input.TaxPercent,
	}).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

func ToggleActiveProduct(ctx context.Context, id int, isActive bool) (*Product, error) {
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(product).Update("is_active", isActive).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return utils.FetchModel[Product](ctx, id)
}

func GetProducts(ctx context.Context, name *string) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
