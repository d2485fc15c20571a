package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RestaurantID *uuid.UUID  `gorm:"type:uuid;index" json:"restaurant_id,omitempty"`
	Restaurant   *Restaurant `gorm:"constraint:OnDelete:SET NULL;foreignKey:RestaurantID;references:ID" json:"restaurant,omitempty"`
	TotalPrice   float64     `gorm:"not null;default:0;column:total_price" json:"total_price"`
	Status       string      `gorm:"not null;default:pending;column:status;index" json:"status"`
	CreatedAt    time.Time   `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string {
	return "order"
}
