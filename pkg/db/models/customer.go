package models

import "time"

// Customer is the durable per-identity chat profile.
type Customer struct {
	Identity         string    `gorm:"column:identity;primaryKey"`
	Name             string    `gorm:"column:name;not null;default:''"`
	StoreID          string    `gorm:"column:store_id;not null"`
	IsBusiness       bool      `gorm:"column:is_business;not null;default:false"`
	BusinessCategory string    `gorm:"column:business_category;not null;default:''"`
	LoyaltyPoints    int       `gorm:"column:loyalty_points;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	LastSeenAt       time.Time `gorm:"column:last_seen_at;not null"`

	Subscriptions []Subscription `gorm:"foreignKey:CustomerIdentity;references:Identity"`
}
