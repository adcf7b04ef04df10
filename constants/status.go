package constants

import "time"

// Reservation status
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// Room type
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeSuite  = "suite"
	RoomTypeDeluxe = "deluxe"
)

var RoomTypes = []string{RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe}

// Room block type
const (
	BlockTypeMaintenance = "maintenance"
	BlockTypeEvent       = "event"
	BlockTypeOther       = "other"
)

// Calendar day status
const (
	DayStatusAvailable   = "available"
	DayStatusReserved    = "reserved"
	DayStatusMaintenance = "maintenance"
	DayStatusBlocked     = "blocked"
)

// Payment status
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Discount status
const (
	DiscountStatusInactive = 0
	DiscountStatusActive   = 1
)

// Roles
const (
	RoleGuest      = "guest"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Notification events
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationCancelled     = "reservation.cancelled"
	EventPaymentConfirmed         = "payment.confirmed"
)

// Cache operations and default TTLs
const (
	CacheOpRoom         = "room"
	CacheOpRoomList     = "rooms"
	CacheOpSearch       = "search"
	CacheOpAvailability = "availability"
	CacheOpCalendar     = "calendar"

	DefaultRoomTTL         = 300 * time.Second
	DefaultSearchTTL       = 120 * time.Second
	DefaultAvailabilityTTL = 60 * time.Second
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds calendar and availability windows.
const MaxRangeDays = 366
