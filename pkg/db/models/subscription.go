package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription persists one recurring pickup. Price is frozen at creation.
type Subscription struct {
	ID               string          `gorm:"column:id;primaryKey"`
	CustomerIdentity string          `gorm:"column:customer_identity;not null;index"`
	ProductID        int64           `gorm:"column:product_id;not null"`
	ProductName      string          `gorm:"column:product_name;not null"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Frequency        string          `gorm:"column:frequency;not null"`
	IntervalDays     int             `gorm:"column:interval_days;not null"`
	PickupDay        string          `gorm:"column:pickup_day;not null"`
	NextPickup       time.Time       `gorm:"column:next_pickup;not null;index"`
	Status           string          `gorm:"column:status;not null;default:'active'"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}
