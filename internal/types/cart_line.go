package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CartLine is one entry in a user's cart. At most one line exists per
// (user, food, canonical exclusion set); ExclusionsKey carries the
// canonical form so the database can enforce that with a unique index.
type CartLine struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_cart_line_identity" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FoodID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_cart_line_identity" json:"food_id"`
	Food          *Food          `gorm:"constraint:OnDelete:CASCADE;foreignKey:FoodID;references:ID" json:"food,omitempty"`
	Quantity      int            `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Exclusions    datatypes.JSON `gorm:"type:jsonb;column:exclusions" json:"excluded_ingredients"`
	ExclusionsKey string         `gorm:"not null;default:'';uniqueIndex:ux_cart_line_identity;column:exclusions_key" json:"-"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CartLine) TableName() string {
	return "cart_line"
}
