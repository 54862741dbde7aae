package utils

import (
	"context"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/mmsoftware/billing_backend/config"
)

var validate = validator.New()

// ValidateStruct runs validator tags on an input struct. Gin binding covers
// HTTP callers; this keeps the same checks for direct callers (tests, CLIs).
func ValidateStruct(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		return InvalidArgumentError("%s", err.Error())
	}
	return nil
}

// check if id exists, may return RecordNotFound error
func ValidateResourceId[T any](ctx context.Context, id interface{}) error {
	count, err := ResourceCountWhere[T](ctx, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}
	return nil
}

func ValidateUnique[T any](ctx context.Context, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, column+" = ? AND NOT id = ?", value, exceptId)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return InvalidArgumentError("duplicate %s", column)
	}
	return nil
}

// count records matching condition
func ResourceCountWhere[T any](ctx context.Context, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&model).Where(condition, value...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
