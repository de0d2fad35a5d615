package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int               `gorm:"primary_key" json:"id"`
	CustomerOrderId *int              `gorm:"index" json:"customer_order_id"`
	Amount          decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"amount"`
	Status          TransactionStatus `gorm:"type:enum('PENDING','COMPLETED','FAILED');default:PENDING;index" json:"status"`
	Reference       string            `gorm:"size:100" json:"reference"`
	CreatedAt       time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
