package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                int             `gorm:"primary_key" json:"id"`
	Sku               string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Description       string          `gorm:"type:text" json:"description"`
	CategoryId        int             `gorm:"index;not null;default:0" json:"category_id"`
	CurrentStock      int             `gorm:"not null;default:0" json:"current_stock"`
	MinimumStockLevel int             `gorm:"not null;default:0" json:"minimum_stock_level"`
	LeadTime          int             `gorm:"not null;default:0" json:"lead_time"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_cost"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	IsActive          *bool           `gorm:"not null;default:true" json:"is_active"`
	OrderItems        []OrderItem     `gorm:"foreignKey:ProductId" json:"-"`
	Boms              []Bom           `gorm:"foreignKey:ProductId" json:"-"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p Product) Active() bool {
	return p.IsActive == nil || *p.IsActive
}
