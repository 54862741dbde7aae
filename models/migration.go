package models

import (
	"github.com/mmsoftware/billing_backend/config"
)

func MigrateTable() error {
	db := config.GetDB()
	err := db.AutoMigrate(
		&Product{},
		&Customer{},
		&Bill{},
		&BillItem{},
		&Payment{},
		&BillNumberSeries{},
	)
	if err != nil {
		return err
	}
	return EnsureBillNumberSeries()
}
