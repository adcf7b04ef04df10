// Package repository holds the persistence contracts used by the services
// together with a gorm/Postgres implementation and an in-memory one.
//
// An empty TenantID in a filter means "all tenants"; callers are expected to
// only pass it for privileged administrators.
package repository

import (
	"context"
	"time"

	"hotelbooking/models"
)

type RoomFilter struct {
	TenantID      string
	IDs           []string
	Type          string
	AvailableOnly bool
}

type RoomStore interface {
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	GetByNumber(ctx context.Context, tenantID, number string) (*models.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]models.Room, error)
}

// ReservationFilter selects reservations. When both From and To are set only
// reservations overlapping [From, To) are returned.
type ReservationFilter struct {
	TenantID   string
	RoomIDs    []string
	UserID     string
	Status     string
	ActiveOnly bool
	From       *time.Time
	To         *time.Time
}

type ReservationStore interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error)
	// Update writes r only if the stored version still equals r.Version and
	// bumps r.Version on success. A stale version yields ErrStaleWrite.
	Update(ctx context.Context, r *models.Reservation) error
}

type BlockFilter struct {
	TenantID   string
	RoomIDs    []string
	ActiveOnly bool
	ExcludeID  string
	From       *time.Time
	To         *time.Time
}

type BlockStore interface {
	Create(ctx context.Context, b *models.RoomBlock) error
	Update(ctx context.Context, b *models.RoomBlock) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.RoomBlock, error)
	List(ctx context.Context, filter BlockFilter) ([]models.RoomBlock, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByReservationID(ctx context.Context, reservationID string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
}

type DiscountStore interface {
	Create(ctx context.Context, d *models.Discount) error
	GetByID(ctx context.Context, id string) (*models.Discount, error)
	GetByCode(ctx context.Context, tenantID, code string) (*models.Discount, error)
	List(ctx context.Context, tenantID string) ([]models.Discount, error)
	// IncrementUsage bumps the usage counter unless the quantity is exhausted.
	IncrementUsage(ctx context.Context, id string) error
}

// Stores bundles every store so wiring code can pass one value around.
type Stores struct {
	Rooms        RoomStore
	Reservations ReservationStore
	Blocks       BlockStore
	Payments     PaymentStore
	Discounts    DiscountStore
}
