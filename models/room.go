package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"hotelbooking/constants"
)

type Room struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID      string          `json:"tenantId" gorm:"type:varchar(64);index;uniqueIndex:idx_rooms_tenant_number"`
	Number        string          `json:"number" gorm:"type:varchar(32);uniqueIndex:idx_rooms_tenant_number"`
	Type          string          `json:"type" gorm:"type:varchar(16);index"`
	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"type:numeric(12,2)"`
	MaxOccupancy  int             `json:"maxOccupancy"`
	IsAvailable   bool            `json:"isAvailable" gorm:"default:true"`
	RatingAverage float64         `json:"ratingAverage"`
	Amenities     pq.StringArray  `json:"amenities" gorm:"type:text[]"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) ValidateType() error {
	for _, t := range constants.RoomTypes {
		if r.Type == t {
			return nil
		}
	}
	return fmt.Errorf("invalid type: %q, must be one of %v", r.Type, constants.RoomTypes)
}

// HasAmenities reports whether every wanted amenity is present.
func (r *Room) HasAmenities(wanted []string) bool {
	have := make(map[string]bool, len(r.Amenities))
	for _, a := range r.Amenities {
		have[a] = true
	}
	for _, w := range wanted {
		if !have[w] {
			return false
		}
	}
	return true
}
