package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Email     string          `gorm:"size:255" json:"email"`
	Phone     string          `gorm:"size:50" json:"phone"`
	IsActive  *bool           `gorm:"not null;default:true" json:"is_active"`
	Orders    []CustomerOrder `gorm:"foreignKey:CustomerId" json:"-"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c Customer) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

type CustomerOrder struct {
	ID           int             `gorm:"primary_key" json:"id"`
	OrderNumber  string          `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerId   int             `gorm:"index;not null" json:"customer_id"`
	OrderDate    time.Time       `gorm:"not null;index" json:"order_date"`
	RequiredDate time.Time       `gorm:"not null" json:"required_date"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Status       OrderStatus     `gorm:"type:enum('PENDING','IN_PROGRESS','COMPLETED','CANCELLED');default:PENDING;index" json:"status"`
	Customer     *Customer       `gorm:"foreignKey:CustomerId" json:"-"`
	Items        []OrderItem     `gorm:"foreignKey:CustomerOrderId" json:"-"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is one line of a customer order.
type OrderItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CustomerOrderId int             `gorm:"index;not null" json:"customer_order_id"`
	ProductId       int             `gorm:"index;not null" json:"product_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
