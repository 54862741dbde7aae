package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsoftware/billing_backend/config"
	"github.com/mmsoftware/billing_backend/utils"
	"gorm.io/gorm"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Mobile    string    `gorm:"size:20" json:"mobile"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name   string `json:"name" binding:"required" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewCustomer) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Customer](ctx, id); err != nil {
			return err
		}
	}
	// validate unique name
	if err := utils.ValidateUnique[Customer](ctx, "name", input.Name, id); err != nil {
		return err
	}
	// validate email
	if input.Email != "" {
		if err := utils.ValidateUnique[Customer](ctx, "email", input.Email, id); err != nil {
			return err
		}
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Mobile: input.Mobile,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(customer).Updates(map[string]interface{}{
		"Name":   input.Name,
		"Email":  input.Email,
		"Phone":  input.Phone,
		"Mobile": input.Mobile,
	}).Error
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func ToggleActiveCustomer(ctx context.Context, id int, isActive bool) (*Customer, error) {
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(customer).Update("is_active", isActive).Error
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return utils.FetchModel[Customer](ctx, id)
}

func GetCustomers(ctx context.Context, name *string) ([]*Customer, error) {
	db := config.GetDB()
	var results []*Customer

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// findActiveCustomer resolves the customer a bill is issued to. A missing or
// inactive customer is an input error, not a lookup miss.
func findActiveCustomer(ctx context.Context, id int) (*Customer, error) {
	db := config.GetDB()
	var customer Customer
	err := db.WithContext(ctx).Where("id = ? AND is_active = true", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.InvalidArgumentError("invalid customer selected")
		}
		return nil, err
	}
	return &customer, nil
}
