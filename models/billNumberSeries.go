package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmsoftware/billing_backend/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillNumberSeries is the uniqueness-guaranteeing sequence behind bill
// numbers. A single row holds the prefix and the next sequence value; the row
// is locked for the duration of the increment so concurrent creates never
// draw the same number.
type BillNumberSeries struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Prefix       string    `gorm:"size:10;not null" json:"prefix"`
	NextSequence int64     `gorm:"not null;default:1" json:"next_sequence"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	defaultBillNumberPrefix = "BILL"
	billNumberPrefixKey     = "billNumberPrefix"
)

// BillNumberGenerator draws the next unique bill number inside the caller's
// transaction. Package-level so tests can pin deterministic numbers.
type BillNumberGenerator func(tx *gorm.DB) (string, error)

var NextBillNumber BillNumberGenerator = nextSeriesBillNumber

func FormatBillNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s-%06d", prefix, sequence)
}

// EnsureBillNumberSeries seeds the series row on startup.
func EnsureBillNumberSeries() error {
	db := config.GetDB()
	var series BillNumberSeries
	err := db.First(&series).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&BillNumberSeries{Prefix: defaultBillNumberPrefix, NextSequence: 1}).Error
}

func nextSeriesBillNumber(tx *gorm.DB) (string, error) {
	var series BillNumberSeries
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&series).Error
	if err != nil {
		return "", err
	}

	seq := series.NextSequence
	if err := tx.Model(&series).Update("next_sequence", seq+1).Error; err != nil {
		return "", err
	}
	return FormatBillNumber(billNumberPrefix(series.Prefix), seq), nil
}

// billNumberPrefix reads the prefix through the redis cache; the DB value is
// authoritative and cached on first use.
func billNumberPrefix(dbPrefix string) string {
	var cached string
	exists, err := config.GetRedisObject(billNumberPrefixKey, &cached)
	if err == nil && exists && cached != "" {
		return cached
	}
	if dbPrefix == "" {
		dbPrefix = defaultBillNumberPrefix
	}
	_ = config.SetRedisObject(billNumberPrefixKey, dbPrefix, 0)
	return dbPrefix
}
