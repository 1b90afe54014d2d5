package models

import (
	"log"

	"github.com/nusratfurniture/workshop_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Employee{}, &WeeklyAssignment{},
		&Transaction{},
		&InventoryCategory{}, &BedSize{},
		&FoamBrand{}, &FoamModel{}, &FoamThickness{}, &FoamVariant{},
		&FurnitureItem{}, &FurnitureVariant{},
		&SofaItem{}, &HardwareMaterial{}, &PoshishMaterial{},
		&StockMovement{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
