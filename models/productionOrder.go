package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductionOrder struct {
	ID          int                   `gorm:"primary_key" json:"id"`
	OrderNumber string                `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	ProductId   int                   `gorm:"index;not null" json:"product_id"`
	Quantity    int                   `gorm:"not null" json:"quantity"`
	Status      ProductionOrderStatus `gorm:"type:enum('PENDING','IN_PROGRESS','COMPLETED','CANCELLED');default:PENDING;index" json:"status"`
	StartDate   time.Time             `gorm:"not null" json:"start_date"`
	DueDate     time.Time             `gorm:"not null;index" json:"due_date"`
	Operations  []Operation           `gorm:"foreignKey:ProductionOrderId" json:"-"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

// Operation is a scheduled interval of work for a production order at a work center.
type Operation struct {
	ID                int              `gorm:"primary_key" json:"id"`
	ProductionOrderId int              `gorm:"index;not null" json:"production_order_id"`
	WorkCenterId      int              `gorm:"index;not null" json:"work_center_id"`
	Name              string           `gorm:"size:100;not null" json:"name"`
	StartTime         time.Time        `gorm:"not null;index" json:"start_time"`
	EndTime           time.Time        `gorm:"not null" json:"end_time"`
	Status            OperationStatus  `gorm:"type:enum('PENDING','IN_PROGRESS','COMPLETED');default:PENDING" json:"status"`
	Cost              decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"cost"`
	ProductionOrder   *ProductionOrder `gorm:"foreignKey:ProductionOrderId" json:"-"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// Duration is the scheduled length of the operation; inverted intervals count as zero.
func (o Operation) Duration() time.Duration {
	if o.EndTime.Before(o.StartTime) {
		return 0
	}
	return o.EndTime.Sub(o.StartTime)
}

type WorkCenter struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	CapacityPerHour decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"capacity_per_hour"`
	IsActive        *bool           `gorm:"not null;default:true" json:"is_active"`
	Operations      []Operation     `gorm:"foreignKey:WorkCenterId" json:"-"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w WorkCenter) Active() bool {
	return w.IsActive == nil || *w.IsActive
}

type QualityCheck struct {
	ID                int                `gorm:"primary_key" json:"id"`
	ProductionOrderId int                `gorm:"index;not null" json:"production_order_id"`
	CheckDate         time.Time          `gorm:"not null;index" json:"check_date"`
	Status            QualityCheckStatus `gorm:"type:enum('PENDING','IN_PROGRESS','COMPLETED','FAILED');default:PENDING" json:"status"`
	DefectsFound      *string            `gorm:"type:text" json:"defects_found"`
	Notes             string             `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}
