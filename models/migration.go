package models

import (
	"log"

	"bitbucket.org/mmdatafocus/depot_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Customer{},
		&Product{},
		&Supplier{},
		&Order{}, &OrderItem{},
		&DriverAllocation{},
		&DriverSale{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
