package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
)

type Delivery struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Order     *Order    `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrderID;references:ID" json:"order,omitempty"`
	CourierID *uuid.UUID `gorm:"type:uuid;index" json:"courier_id,omitempty"`
	Courier   *User     `gorm:"constraint:OnDelete:SET NULL;foreignKey:CourierID;references:ID" json:"courier,omitempty"`
	Status    string    `gorm:"not null;default:assigned;column:status;index" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Delivery) TableName() string {
	return "delivery"
}
