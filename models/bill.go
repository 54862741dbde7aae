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
	"gorm.io/gorm/clause"
)

type Bill struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BillNumber string    `gorm:"size:255;not null;uniqueIndex" json:"bill_number"`
	BillDate   time.Time `gorm:"not null;index" json:"bill_date"`
	CustomerId int       `gorm:"index;not null" json:"customer_id"`
	// CustomerName is a snapshot taken at creation; the binding is immutable
	// afterwards and updates never re-derive it.
	CustomerName  string          `gorm:"size:100;not null" json:"customer_name"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	GstAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gst_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
	CurrentStatus BillStatus      `gorm:"type:enum('Active','Paid','Cancelled');not null" json:"current_status"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	Items         []BillItem      `gorm:"foreignKey:BillId" json:"items"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// BillItem is a value captured at transaction time: price and tax are copied
// from the product so later catalog changes never alter an issued bill.
type BillItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	BillId      int             `gorm:"index;not null" json:"bill_id"`
	ProductId   int             `gorm:"index;not null" json:"product_id"`
	ProductName string          `gorm:"size:100;not null" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TaxPercent  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_percent"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	GstAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gst_amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBill struct {
	CustomerId int             `json:"customer_id" binding:"required" validate:"required,gt=0"`
	Discount   decimal.Decimal `json:"discount"`
	Items      []NewBillItem   `json:"items" binding:"required" validate:"required,min=1,dive"`
}

type NewBillItem struct {
	ProductId int `json:"product_id" binding:"required" validate:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"required" validate:"required,gt=0"`
}

/* read projections */

type BillItemResponse struct {
	ProductId   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	GstAmount   decimal.Decimal `json:"gst_amount"`
}

// BillResponse is the flattened view consumed by list/search UIs and the
// document renderer. Totals are the stored aggregates; consumers must not
// recompute them.
type BillResponse struct {
	ID            int                `json:"id"`
	BillNumber    string             `json:"bill_number"`
	BillDate      time.Time          `json:"bill_date"`
	CustomerId    int                `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	GstAmount     decimal.Decimal    `json:"gst_amount"`
	Total         decimal.Decimal    `json:"total"`
	CurrentStatus BillStatus         `json:"current_status"`
	Items         []BillItemResponse `json:"items,omitempty"`
}

type BillListPage struct {
	Bills    []*BillResponse `json:"bills"`
	PageInfo PageInfo        `json:"pageInfo"`
}

func mapBillResponse(bill *Bill, withItems bool) *BillResponse {
	resp := &BillResponse{
		ID:            bill.ID,
		BillNumber:    bill.BillNumber,
		BillDate:      bill.BillDate,
		CustomerId:    bill.CustomerId,
		CustomerName:  bill.CustomerName,
		Subtotal:      bill.Subtotal,
		Discount:      bill.Discount,
		GstAmount:     bill.GstAmount,
		Total:         bill.Total,
		CurrentStatus: bill.CurrentStatus,
	}
	if withItems {
		for _, item := range bill.Items {
			resp.Items = append(resp.Items, BillItemResponse{
				ProductId:   item.ProductId,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
				TaxPercent:  item.TaxPercent,
				Quantity:    item.Quantity,
				LineTotal:   item.LineTotal,
				GstAmount:   item.GstAmount,
			})
		}
	}
	return resp
}

func billCacheKey(id int) string {
	return fmt.Sprintf("bill:%d", id)
}

// buildBillItems reserves stock for every requested line inside tx and builds
// the snapshot items. Any failure propagates and the caller rolls the whole
// transaction back, so a shortfall on line 3 of 5 leaves lines 1-2 untouched.
func buildBillItems(tx *gorm.DB, inputs []NewBillItem) ([]BillItem, error) {
	items := make([]BillItem, 0, len(inputs))
	for _, input := range inputs {
		product, err := ReserveStock(tx, input.ProductId, input.Quantity)
		if err != nil {
			return nil, err
		}

		lineTotal, gstAmount := CalculateBillItemAmounts(product.SellingPrice, product.TaxPercent, input.Quantity)

		taxPercent := decimal.Zero
		if product.TaxPercent != nil {
			taxPercent = *product.TaxPercent
		}

		items = append(items, BillItem{
			ProductId:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.SellingPrice,
			TaxPercent:  taxPercent,
			Quantity:    input.Quantity,
			LineTotal:   lineTotal,
			GstAmount:   gstAmount,
		})
	}
	return items, nil
}

func CreateBill(ctx context.Context, input *NewBill) (*Bill, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	customer, err := findActiveCustomer(ctx, input.CustomerId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	// Always rollback on early-return or panic to avoid leaking DB locks.
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	items, err := buildBillItems(tx, input.Items)
	if err != nil {
		return nil, err
	}

	subtotal, gstAmount, total, err := CalculateBillTotals(items, input.Discount)
	if err != nil {
		return nil, err
	}

	billNumber, err := NextBillNumber(tx)
	if err != nil {
		return nil, err
	}

	bill := Bill{
		BillNumber:    billNumber,
		BillDate:      time.Now().UTC(),
		CustomerId:    customer.ID,
		CustomerName:  customer.Name,
		Subtotal:      subtotal,
		Discount:      input.Discount,
		GstAmount:     gstAmount,
		Total:         total,
		CurrentStatus: BillStatusActive,
		Items:         items,
	}
	if err := tx.Create(&bill).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// fetchBillForChange loads and row-locks a bill with its items inside tx.
func fetchBillForChange(tx *gorm.DB, id int) (*Bill, error) {
	var bill Bill
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("bill not found with id: %d", id)
		}
		return nil, err
	}
	if err := tx.Where("bill_id = ?", bill.ID).Order("id").Find(&bill.Items).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// UpdateBill replaces the item set of an Active bill: every existing
// reservation is released, the prior items are discarded and the new list is
// reserved/snapshotted/recomputed exactly like create, all in one transaction.
// The customer binding stays as captured at creation.
func UpdateBill(ctx context.Context, id int, input *NewBill) (*Bill, error) {
	if err := utils.ValidateStruct(input); err != nil {
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

	bill, err := fetchBillForChange(tx, id)
	if err != nil {
		return nil, err
	}
	if bill.CurrentStatus != BillStatusActive {
		return nil, utils.InvalidStateError("only Active bills can be edited")
	}

	// undo existing reservations before re-reserving against the new set
	for _, item := range bill.Items {
		if err := ReleaseStock(tx, item.ProductId, item.Quantity); err != nil {
			return nil, err
		}
	}
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&BillItem{}).Error; err != nil {
		return nil, err
	}

	items, err := buildBillItems(tx, input.Items)
	if err != nil {
		return nil, err
	}

	subtotal, gstAmount, total, err := CalculateBillTotals(items, input.Discount)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].BillId = bill.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(bill).Updates(map[string]interface{}{
		"Subtotal":  subtotal,
		"Discount":  input.Discount,
		"GstAmount": gstAmount,
		"Total":     total,
	}).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	_ = config.DeleteRedisKey(billCacheKey(bill.ID))

	bill.Items = items
	bill.Subtotal = subtotal
	bill.Discount = input.Discount
	bill.GstAmount = gstAmount
	bill.Total = total
	return bill, nil
}

// CancelBill releases every reservation held by the bill and marks it
// Cancelled. Nothing is hard-deleted; the bill drops out of active listings
// via its is_active flag.
func CancelBill(ctx context.Context, id int) (*Bill, error) {
	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	bill, err := fetchBillForChange(tx, id)
	if err != nil {
		return nil, err
	}
	if bill.CurrentStatus == BillStatusCancelled {
		return nil, utils.InvalidStateError("bill already cancelled")
	}
	if bill.CurrentStatus != BillStatusActive {
		return nil, utils.InvalidStateError("cannot cancel a bill with status: %s", bill.CurrentStatus)
	}

	for _, item := range bill.Items {
		if err := ReleaseStock(tx, item.ProductId, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Model(bill).Updates(map[string]interface{}{
		"CurrentStatus": BillStatusCancelled,
		"IsActive":      false,
	}).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	_ = config.DeleteRedisKey(billCacheKey(bill.ID))

	bill.CurrentStatus = BillStatusCancelled
	return bill, nil
}

// GetBill returns the flattened read projection, redis-cached.
func GetBill(ctx context.Context, id int) (*BillResponse, error) {
	var cached BillResponse
	exists, err := config.GetRedisObject(billCacheKey(id), &cached)
	if err == nil && exists {
		return &cached, nil
	}

	bill, err := GetBillEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := mapBillResponse(bill, true)
	_ = config.SetRedisObject(billCacheKey(id), resp, time.Hour)
	return resp, nil
}

// GetBillEntity fetches the persisted aggregate with its items.
func GetBillEntity(ctx context.Context, id int) (*Bill, error) {
	db := config.GetDB()
	var bill Bill
	err := db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("bill_items.id")
	}).First(&bill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("bill not found with id: %d", id)
		}
		return nil, err
	}
	return &bill, nil
}

// ListBills returns active bills ordered by bill date descending, optionally
// filtered to bill numbers containing search, with offset/size pagination.
func ListBills(ctx context.Context, page int, size int, search *string) (*BillListPage, error) {
	limit, offset, page, size := NormalizePage(page, size)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Bill{}).Where("is_active = true")
	if search != nil && len(*search) > 0 {
		dbCtx = dbCtx.Where("bill_number LIKE ?", "%"+*search+"%")
	}

	var totalCount int64
	if err := dbCtx.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var bills []*Bill
	if err := dbCtx.Order("bill_date DESC").Limit(limit).Offset(offset).Find(&bills).Error; err != nil {
		return nil, err
	}

	rows := make([]*BillResponse, 0, len(bills))
	for _, bill := range bills {
		rows = append(rows, mapBillResponse(bill, false))
	}

	return &BillListPage{
		Bills:    rows,
		PageInfo: NewPageInfo(page, size, totalCount),
	}, nil
}
