package types

import (
	"time"

	"github.com/google/uuid"
)

type Food struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RestaurantID *uuid.UUID  `gorm:"type:uuid;index" json:"restaurant_id,omitempty"`
	Restaurant   *Restaurant `gorm:"constraint:OnDelete:SET NULL;foreignKey:RestaurantID;references:ID" json:"restaurant,omitempty"`
	Name         string      `gorm:"not null;column:name" json:"name"`
	Description  string      `gorm:"column:description" json:"description"`
	Category     string      `gorm:"column:category;index" json:"category"`
	Price        float64     `gorm:"not null;column:price" json:"price"`
	ImageURL     string      `gorm:"column:image_url" json:"image_url"`
	Rating       float64     `gorm:"not null;default:0;column:rating" json:"rating"`
	RatingCount  int         `gorm:"not null;default:0;column:rating_count" json:"rating_count"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Food) TableName() string {
	return "food"
}
