package utils

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrKind classifies engine failures so the HTTP layer can map them to
// response codes without string matching.
type ErrKind string

const (
	ErrKindNotFound          ErrKind = "NotFound"
	ErrKindInsufficientStock ErrKind = "InsufficientStock"
	ErrKindInvalidState      ErrKind = "InvalidState"
	ErrKindInvalidArgument   ErrKind = "InvalidArgument"
	ErrKindInternal          ErrKind = "Internal"
)

// Error carries a kind and a human-readable message. Stock shortfalls also
// carry the product name and the quantity still available.
type Error struct {
	Kind         ErrKind
	Message      string
	ProductName  string
	AvailableQty int
}

func (e *Error) Error() string {
	return e.Message
}

var ErrorRecordNotFound = &Error{Kind: ErrKindNotFound, Message: "record not found"}

func NotFoundError(format string, args ...interface{}) error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStockError(productName string, available int) error {
	return &Error{
		Kind:         ErrKindInsufficientStock,
		Message:      fmt.Sprintf("only %d units available for %s", available, productName),
		ProductName:  productName,
		AvailableQty: available,
	}
}

func InvalidStateError(format string, args ...interface{}) error {
	return &Error{Kind: ErrKindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgumentError(format string, args ...interface{}) error {
	return &Error{Kind: ErrKindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err. Raw gorm misses count as NotFound so
// callers never have to depend on gorm error values.
func KindOf(err error) ErrKind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKindNotFound
	}
	return ErrKindInternal
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
