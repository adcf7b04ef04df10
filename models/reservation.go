package models

import (
	"time"

	"github.com/shopspring/decimal"

	"hotelbooking/constants"
)

type Reservation struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID       string          `json:"tenantId" gorm:"type:varchar(64);index"`
	RoomID         string          `json:"roomId" gorm:"type:varchar(36);index:idx_reservations_room_dates"`
	UserID         string          `json:"userId" gorm:"type:varchar(64);index"`
	CheckIn        time.Time       `json:"checkIn" gorm:"type:date;index:idx_reservations_room_dates"`
	CheckOut       time.Time       `json:"checkOut" gorm:"type:date;index:idx_reservations_room_dates"`
	TotalPrice     decimal.Decimal `json:"totalPrice" gorm:"type:numeric(12,2)"`
	DiscountAmount decimal.Decimal `json:"discountAmount" gorm:"type:numeric(12,2)"`
	CouponCode     *string         `json:"couponCode,omitempty" gorm:"type:varchar(64)"`
	CouponID       *string         `json:"-" gorm:"type:varchar(36)"`
	GuestNotes     string          `json:"guestNotes,omitempty" gorm:"type:text"`
	Status         string          `json:"status" gorm:"type:varchar(16);index"`
	QRToken        *string         `json:"qrToken,omitempty" gorm:"type:varchar(64)"`
	CheckedInAt    *time.Time      `json:"checkedInAt,omitempty"`
	CheckedOutAt   *time.Time      `json:"checkedOutAt,omitempty"`
	Version        int             `json:"version" gorm:"not null;default:1"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Overlaps applies the half-open interval test [CheckIn, CheckOut).
func (r *Reservation) Overlaps(from, to time.Time) bool {
	return r.CheckIn.Before(to) && r.CheckOut.After(from)
}

// Covers reports whether the guest occupies the room on the given night.
func (r *Reservation) Covers(day time.Time) bool {
	return !day.Before(r.CheckIn) && day.Before(r.CheckOut)
}

func (r *Reservation) IsActive() bool {
	return r.Status != constants.ReservationStatusCancelled
}
