package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Material struct {
	ID                int             `gorm:"primary_key" json:"id"`
	Sku               string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Unit              string          `gorm:"size:50;not null" json:"unit"`
	CurrentStock      int             `gorm:"not null;default:0" json:"current_stock"`
	MinimumStockLevel int             `gorm:"not null;default:0" json:"minimum_stock_level"`
	LeadTime          int             `gorm:"not null;default:0" json:"lead_time"`
	CostPerUnit       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_per_unit"`
	IsActive          *bool           `gorm:"not null;default:true" json:"is_active"`
	Boms              []Bom           `gorm:"foreignKey:MaterialId" json:"-"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m Material) Active() bool {
	return m.IsActive == nil || *m.IsActive
}

// Bom is one bill-of-materials line: how much of a material one unit of a product needs.
type Bom struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ProductId       int             `gorm:"uniqueIndex:idx_bom_product_material;not null" json:"product_id"`
	MaterialId      int             `gorm:"uniqueIndex:idx_bom_product_material;not null" json:"material_id"`
	QuantityNeeded  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_needed"`
	WastePercentage decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"waste_percentage"`
	Product         *Product        `gorm:"foreignKey:ProductId" json:"-"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
