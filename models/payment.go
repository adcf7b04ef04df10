package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID      string          `json:"tenantId" gorm:"type:varchar(64);index"`
	ReservationID string          `json:"reservationId" gorm:"type:varchar(36);uniqueIndex"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(12,2)"`
	Status        string          `json:"status" gorm:"type:varchar(16)"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
