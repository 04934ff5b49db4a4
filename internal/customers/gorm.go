package customers

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/panesgr/chatbot-backend/internal/stores"
	"github.com/panesgr/chatbot-backend/pkg/db"
	"github.com/panesgr/chatbot-backend/pkg/db/models"
)

// GormStore persists customer profiles in the relational database.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore constructs a customer store bound to the provided GORM DB.
func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{db: conn, now: time.Now}
}

// GetOrCreate loads the profile for the identity, inserting a fresh one
// assigned to the default store on first contact.
func (s *GormStore) GetOrCreate(ctx context.Context, identity string) (*Customer, bool, error) {
	row, err := s.find(ctx, identity)
	if err == nil {
		return fromModel(row), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	now := s.now()
	created := &models.Customer{
		Identity:   identity,
		StoreID:    stores.DefaultStoreID,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
		// Lost a create race with a concurrent first message; reload.
		if db.IsUniqueViolation(err, "") {
			row, err = s.find(ctx, identity)
			if err != nil {
				return nil, false, err
			}
			return fromModel(row), false, nil
		}
		return nil, false, err
	}
	return fromModel(created), true, nil
}

// Save upserts the profile row and its subscriptions.
func (s *GormStore) Save(ctx context.Context, customer *Customer) error {
	row, subs := toModel(customer)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error; err != nil {
			return err
		}
		for i := range subs {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&subs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// All returns every stored profile with subscriptions preloaded.
func (s *GormStore) All(ctx context.Context) ([]*Customer, error) {
	var rows []models.Customer
	if err := s.db.WithContext(ctx).Preload("Subscriptions").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*Customer, 0, len(rows))
	for i := range rows {
		out = append(out, fromModel(&rows[i]))
	}
	return out, nil
}

func (s *GormStore) find(ctx context.Context, identity string) (*models.Customer, error) {
	var row models.Customer
	err := s.db.WithContext(ctx).
		Preload("Subscriptions").
		First(&row, "identity = ?", identity).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func fromModel(row *models.Customer) *Customer {
	c := &Customer{
		Identity:         row.Identity,
		Name:             row.Name,
		StoreID:          row.StoreID,
		IsBusiness:       row.IsBusiness,
		BusinessCategory: row.BusinessCategory,
		LoyaltyPoints:    row.LoyaltyPoints,
		CreatedAt:        row.CreatedAt,
		LastSeenAt:       row.LastSeenAt,
	}
	for _, sub := range row.Subscriptions {
		c.Subscriptions = append(c.Subscriptions, Subscription{
			ID:          sub.ID,
			ProductID:   sub.ProductID,
			ProductName: sub.ProductName,
			Price:       sub.Price,
			Frequency:   Frequency(sub.Frequency),
			PickupDay:   sub.PickupDay,
			NextPickup:  sub.NextPickup,
			Status:      SubscriptionStatus(sub.Status),
			CreatedAt:   sub.CreatedAt,
		})
	}
	return c
}

func toModel(c *Customer) (*models.Customer, []models.Subscription) {
	row := &models.Customer{
		Identity:         c.Identity,
		Name:             c.Name,
		StoreID:          c.StoreID,
		IsBusiness:       c.IsBusiness,
		BusinessCategory: c.BusinessCategory,
		LoyaltyPoints:    c.LoyaltyPoints,
		CreatedAt:        c.CreatedAt,
		LastSeenAt:       c.LastSeenAt,
	}
	subs := make([]models.Subscription, 0, len(c.Subscriptions))
	for _, sub := range c.Subscriptions {
		subs = append(subs, models.Subscription{
			ID:               sub.ID,
			CustomerIdentity: c.Identity,
			ProductID:        sub.ProductID,
			ProductName:      sub.ProductName,
			Price:            sub.Price,
			Frequency:        string(sub.Frequency),
			IntervalDays:     sub.Frequency.IntervalDays(),
			PickupDay:        sub.PickupDay,
			NextPickup:       sub.NextPickup,
			Status:           string(sub.Status),
			CreatedAt:        sub.CreatedAt,
		})
	}
	return row, subs
}
