package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Email          string          `gorm:"size:255" json:"email"`
	Phone          string          `gorm:"size:50" json:"phone"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	PurchaseOrders []PurchaseOrder `gorm:"foreignKey:SupplierId" json:"-"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s Supplier) Active() bool {
	return s.IsActive == nil || *s.IsActive
}

type PurchaseOrder struct {
	ID               int                 `gorm:"primary_key" json:"id"`
	OrderNumber      string              `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	SupplierId       int                 `gorm:"index;not null" json:"supplier_id"`
	OrderDate        time.Time           `gorm:"not null;index" json:"order_date"`
	ExpectedDelivery time.Time           `gorm:"not null" json:"expected_delivery"`
	Status           PurchaseOrderStatus `gorm:"type:enum('PENDING','APPROVED','ORDERED','COMPLETED','CANCELLED');default:PENDING;index" json:"status"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
