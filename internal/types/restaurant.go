package types

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Address     string    `gorm:"column:address" json:"address"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	Rating      float64   `gorm:"not null;default:0;column:rating" json:"rating"`
	RatingCount int       `gorm:"not null;default:0;column:rating_count" json:"rating_count"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Restaurant) TableName() string {
	return "restaurant"
}
