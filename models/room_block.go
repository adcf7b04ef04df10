package models

import "time"

type RoomBlock struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID  string    `json:"tenantId" gorm:"type:varchar(64);index"`
	RoomID    string    `json:"roomId" gorm:"type:varchar(36);index"`
	StartDate time.Time `json:"startDate" gorm:"type:date;index"`
	EndDate   time.Time `json:"endDate" gorm:"type:date;index"`
	Type      string    `json:"type" gorm:"type:varchar(16)"`
	Reason    *string   `json:"reason,omitempty" gorm:"type:text"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *RoomBlock) Overlaps(from, to time.Time) bool {
	return b.StartDate.Before(to) && b.EndDate.After(from)
}

func (b *RoomBlock) Covers(day time.Time) bool {
	return !day.Before(b.StartDate) && day.Before(b.EndDate)
}
