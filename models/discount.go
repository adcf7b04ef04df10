package models

import (
	"fmt"
	"time"
)

type Discount struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID    string    `json:"tenantId" gorm:"type:varchar(64);uniqueIndex:idx_discounts_tenant_code"`
	Code        string    `json:"code" gorm:"type:varchar(64);uniqueIndex:idx_discounts_tenant_code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UsedCount   int       `json:"usedCount" gorm:"default:0"`
	FromDate    time.Time `json:"fromDate" gorm:"type:date"`
	ToDate      time.Time `json:"toDate" gorm:"type:date"`
	Discount    int       `json:"discount"`
	Status      int       `json:"status" gorm:"default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (d *Discount) ValidateStatusDiscount() error {
	if d.Status < 0 || d.Status > 1 {
		return fmt.Errorf("invalid Status: %d, must be either 0 or 1", d.Status)
	}
	return nil
}
