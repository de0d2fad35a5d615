package models

import (
	"gorm.io/gorm"
)

// MigrateTable creates the read-model tables. The schema is owned by the
// operational system; this is only used for local databases and tests.
func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{}, &Product{}, &Material{}, &Bom{},
		&WorkCenter{}, &ProductionOrder{}, &Operation{}, &QualityCheck{},
		&Supplier{}, &PurchaseOrder{},
		&Customer{}, &CustomerOrder{}, &OrderItem{},
		&Transaction{}, &User{},
	)
}
