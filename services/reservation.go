package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
)

// Notifier sends fire-and-forget domain events.
type Notifier interface {
	Notify(event string, payload interface{})
}

type NopNotifier struct{}

func (NopNotifier) Notify(string, interface{}) {}

// ReservationEvent is the payload of every reservation notification.
type ReservationEvent struct {
	ReservationID  string `json:"reservationId"`
	TenantID       string `json:"tenantId"`
	UserID         string `json:"userId"`
	RoomID         string `json:"roomId"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	TotalPrice     string `json:"totalPrice,omitempty"`
}

func (e ReservationEvent) Tenant() string { return e.TenantID }

func eventFor(r *models.Reservation, previous string) ReservationEvent {
	return ReservationEvent{
		ReservationID:  r.ID,
		TenantID:       r.TenantID,
		UserID:         r.UserID,
		RoomID:         r.RoomID,
		Status:         r.Status,
		PreviousStatus: previous,
		TotalPrice:     r.TotalPrice.StringFixed(2),
	}
}

type ReservationInput struct {
	RoomID     string
	CheckIn    time.Time
	CheckOut   time.Time
	GuestNotes string
	CouponCode string
	// UserID lets an administrator book on behalf of a guest.
	UserID string
}

type ReservationPatch struct {
	Status     *string
	GuestNotes *string
	// Version, when set, must match the stored version.
	Version *int
}

type ReservationListFilter struct {
	RoomID   string
	UserID   string
	Status   string
	Page     int
	PageSize int
}

type ReservationService struct {
	rooms        repository.RoomStore
	reservations repository.ReservationStore
	availability *AvailabilityService
	coupons      CouponResolver
	notifier     Notifier
	locker       repository.RoomLocker
	cache        Cache
	log          logger.Logger
	clock        Clock
}

func NewReservationService(
	stores *repository.Stores,
	availability *AvailabilityService,
	coupons CouponResolver,
	notifier Notifier,
	locker repository.RoomLocker,
	cache Cache,
	log logger.Logger,
	clock Clock,
) *ReservationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReservationService{
		rooms:        stores.Rooms,
		reservations: stores.Reservations,
		availability: availability,
		coupons:      coupons,
		notifier:     notifier,
		locker:       locker,
		cache:        cache,
		log:          log,
		clock:        clock,
	}
}

// Create books a room. Availability is re-checked under the room lock so
// concurrent requests for overlapping dates cannot both succeed.
func (s *ReservationService) Create(ctx context.Context, identity Identity, in ReservationInput) (*models.Reservation, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	if tenantID == "" {
		return nil, apperrors.ErrTenantRequired
	}

	userID := identity.UserID
	if identity.IsAdmin() && in.UserID != "" {
		userID = in.UserID
	}
	if userID == "" {
		return nil, apperrors.Validation("user is required")
	}

	checkIn, checkOut := NormalizeDate(in.CheckIn), NormalizeDate(in.CheckOut)
	if checkIn.Before(s.clock.today()) {
		return nil, apperrors.Validation("check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, apperrors.Validation("check-out date must be after check-in date")
	}

	room, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room.TenantID != tenantID {
		return nil, apperrors.ErrRoomNotFound
	}

	nights := Nights(checkIn, checkOut)
	subtotal := room.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

	reservation := &models.Reservation{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		RoomID:         room.ID,
		UserID:         userID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		TotalPrice:     subtotal,
		DiscountAmount: decimal.Zero,
		GuestNotes:     strings.TrimSpace(in.GuestNotes),
		Status:         constants.ReservationStatusPending,
		Version:        1,
	}
	s.applyCoupon(ctx, reservation, in.CouponCode, subtotal)

	err = s.locker.WithRoomLock(ctx, tenantID, room.ID, func(ctx context.Context) error {
		free, err := s.availability.IsRoomFree(ctx, room, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !free {
			return apperrors.ErrRoomNotAvailable
		}
		return s.reservations.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	invalidateRoom(ctx, s.cache, s.log, tenantID, room.ID)
	s.log.Info("reservation %s created for room %s (%d nights, total %s)", reservation.ID, room.Number, nights, reservation.TotalPrice.StringFixed(2))
	s.notifier.Notify(constants.EventReservationCreated, eventFor(reservation, ""))
	return reservation, nil
}

// applyCoupon discounts the reservation when the code is valid. An invalid
// code or a resolver failure leaves the full price in place.
func (s *ReservationService) applyCoupon(ctx context.Context, r *models.Reservation, code string, subtotal decimal.Decimal) {
	code = strings.TrimSpace(code)
	if code == "" || s.coupons == nil {
		return
	}
	result, err := s.coupons.Validate(ctx, r.TenantID, code, subtotal)
	if err != nil {
		s.log.Warn("coupon %s could not be validated, booking without discount: %v", code, err)
		return
	}
	if !result.Valid {
		s.log.Info("coupon %s is not valid, booking without discount", code)
		return
	}

	discount := result.Discount
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	r.DiscountAmount = discount
	r.TotalPrice = subtotal.Sub(discount)
	normalized := normalizeCode(code)
	r.CouponCode = &normalized
	if result.CouponID != "" {
		id := result.CouponID
		r.CouponID = &id
	}
}

// FindOne returns a reservation the identity may see.
func (s *ReservationService) FindOne(ctx context.Context, id string, identity Identity) (*models.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, r, identity); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReservationService) authorize(ctx context.Context, r *models.Reservation, identity Identity) error {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return err
	}
	if !inTenant(tenantID, r.TenantID) {
		s.log.Warn("user %s denied access to reservation %s of another tenant", identity.UserID, r.ID)
		return apperrors.Forbidden("reservation belongs to another tenant")
	}
	if !identity.IsAdmin() && r.UserID != identity.UserID {
		s.log.Warn("user %s denied access to reservation %s", identity.UserID, r.ID)
		return apperrors.Forbidden("you do not have access to this reservation")
	}
	return nil
}

func (s *ReservationService) List(ctx context.Context, identity Identity, filter ReservationListFilter) ([]models.Reservation, int, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, 0, err
	}
	query := repository.ReservationFilter{TenantID: tenantID, Status: filter.Status, UserID: filter.UserID}
	if filter.RoomID != "" {
		query.RoomIDs = []string{filter.RoomID}
	}
	if !identity.IsAdmin() {
		query.UserID = identity.UserID
	}
	all, err := s.reservations.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	total := len(all)
	start := (page - 1) * size
	if start >= total {
		return []models.Reservation{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// mutate reloads the reservation under its room lock, applies fn and writes
// it back with the version check.
func (s *ReservationService) mutate(ctx context.Context, r *models.Reservation, fn func(fresh *models.Reservation) error) (*models.Reservation, error) {
	var out *models.Reservation
	err := s.locker.WithRoomLock(ctx, r.TenantID, r.RoomID, func(ctx context.Context) error {
		fresh, err := s.reservations.GetByID(ctx, r.ID)
		if err != nil {
			return err
		}
		if err := fn(fresh); err != nil {
			return err
		}
		if err := s.reservations.Update(ctx, fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateRoom(ctx, s.cache, s.log, out.TenantID, out.RoomID)
	return out, nil
}

// Update changes guest notes and, for administrators, the status.
func (s *ReservationService) Update(ctx context.Context, id string, patch ReservationPatch, identity Identity) (*models.Reservation, error) {
	r, err := s.FindOne(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && !identity.IsAdmin() {
		return nil, apperrors.Forbidden("only administrators can change reservation status")
	}

	var previous string
	updated, err := s.mutate(ctx, r, func(fresh *models.Reservation) error {
		if patch.Version != nil && *patch.Version != fresh.Version {
			return apperrors.ErrStaleWrite
		}
		previous = fresh.Status
		if patch.GuestNotes != nil {
			fresh.GuestNotes = strings.TrimSpace(*patch.GuestNotes)
		}
		if patch.Status != nil && *patch.Status != fresh.Status {
			if err := models.Transition(fresh, *patch.Status); err != nil {
				return err
			}
			if fresh.Status == constants.ReservationStatusCompleted && fresh.CheckedOutAt == nil {
				now := s.clock.now()
				fresh.CheckedOutAt = &now
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != previous {
		s.log.Info("reservation %s moved %s -> %s by %s", updated.ID, previous, updated.Status, identity.UserID)
		s.notifier.Notify(constants.EventReservationStatusChanged, eventFor(updated, previous))
	}
	return updated, nil
}

// Cancel is allowed for the owner or an administrator while the
// reservation is pending or confirmed.
func (s *ReservationService) Cancel(ctx context.Context, id string, identity Identity) (*models.Reservation, error) {
	r, err := s.FindOne(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	var previous string
	cancelled, err := s.mutate(ctx, r, func(fresh *models.Reservation) error {
		previous = fresh.Status
		return models.Transition(fresh, constants.ReservationStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("reservation %s cancelled by %s", cancelled.ID, identity.UserID)
	s.notifier.Notify(constants.EventReservationCancelled, eventFor(cancelled, previous))
	return cancelled, nil
}

// CheckIn records arrival of a confirmed reservation during its stay and
// hands out the QR token.
func (s *ReservationService) CheckIn(ctx context.Context, id string, identity Identity) (*models.Reservation, error) {
	r, err := s.FindOne(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, r, func(fresh *models.Reservation) error {
		if fresh.Status != constants.ReservationStatusConfirmed {
			return apperrors.Conflict("only confirmed reservations can be checked in")
		}
		if fresh.CheckedInAt != nil {
			return apperrors.Conflict("reservation already checked in")
		}
		today := s.clock.today()
		if today.Before(fresh.CheckIn) || !today.Before(fresh.CheckOut) {
			return apperrors.Validation("check-in is only possible during the stay")
		}
		if fresh.QRToken == nil {
			token := uuid.NewString()
			fresh.QRToken = &token
		}
		now := s.clock.now()
		fresh.CheckedInAt = &now
		return nil
	})
}

// CheckOut completes a checked-in reservation.
func (s *ReservationService) CheckOut(ctx context.Context, id string, identity Identity) (*models.Reservation, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.Forbidden("only administrators can check guests out")
	}
	r, err := s.FindOne(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	var previous string
	done, err := s.mutate(ctx, r, func(fresh *models.Reservation) error {
		if fresh.CheckedInAt == nil {
			return apperrors.Conflict("reservation has not been checked in")
		}
		previous = fresh.Status
		if err := models.Transition(fresh, constants.ReservationStatusCompleted); err != nil {
			return err
		}
		now := s.clock.now()
		fresh.CheckedOutAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(constants.EventReservationStatusChanged, eventFor(done, previous))
	return done, nil
}

// ExpirePending cancels pending reservations whose check-in date has passed.
// It runs unscoped across tenants and returns how many were cancelled.
func (s *ReservationService) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	today := NormalizeDate(now)
	pending, err := s.reservations.List(ctx, repository.ReservationFilter{Status: constants.ReservationStatusPending})
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range pending {
		r := &pending[i]
		if !r.CheckIn.Before(today) {
			continue
		}
		cancelled, err := s.mutate(ctx, r, func(fresh *models.Reservation) error {
			if fresh.Status != constants.ReservationStatusPending {
				return errSkip
			}
			return models.Transition(fresh, constants.ReservationStatusCancelled)
		})
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			s.log.Error("expire reservation %s failed: %v", r.ID, err)
			continue
		}
		expired++
		s.notifier.Notify(constants.EventReservationCancelled, eventFor(cancelled, constants.ReservationStatusPending))
	}
	if expired > 0 {
		s.log.Info("expired %d pending reservations", expired)
	}
	return expired, nil
}

var errSkip = apperrors.Conflict("skipped")

// GetForPayment implements ReservationUpdater.
func (s *ReservationService) GetForPayment(ctx context.Context, id string, identity Identity) (*models.Reservation, error) {
	return s.FindOne(ctx, id, identity)
}

// ConfirmPayment implements ReservationUpdater. settle runs inside the
// same room-locked unit as the pending -> confirmed transition.
func (s *ReservationService) ConfirmPayment(ctx context.Context, id string, settle func(ctx context.Context, r *models.Reservation) error) (*models.Reservation, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inTenant(tenantID, r.TenantID) {
		return nil, apperrors.ErrReservationNotFound
	}

	var out *models.Reservation
	err = s.locker.WithRoomLock(ctx, r.TenantID, r.RoomID, func(ctx context.Context) error {
		fresh, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if fresh.Status != constants.ReservationStatusPending {
			return apperrors.Conflict("reservation is not pending")
		}
		if err := settle(ctx, fresh); err != nil {
			return err
		}
		if err := models.Transition(fresh, constants.ReservationStatusConfirmed); err != nil {
			return err
		}
		if err := s.reservations.Update(ctx, fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateRoom(ctx, s.cache, s.log, out.TenantID, out.RoomID)
	return out, nil
}
