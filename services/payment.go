package services

import (
	"context"

	"github.com/google/uuid"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
)

// ReservationUpdater is the part of the reservation lifecycle the payment
// flow needs.
type ReservationUpdater interface {
	GetForPayment(ctx context.Context, id string, identity Identity) (*models.Reservation, error)
	ConfirmPayment(ctx context.Context, id string, settle func(ctx context.Context, r *models.Reservation) error) (*models.Reservation, error)
}

type PaymentService struct {
	payments     repository.PaymentStore
	reservations ReservationUpdater
	coupons      CouponResolver
	notifier     Notifier
	log          logger.Logger
}

func NewPaymentService(payments repository.PaymentStore, reservations ReservationUpdater, coupons CouponResolver, notifier Notifier, log logger.Logger) *PaymentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PaymentService{
		payments:     payments,
		reservations: reservations,
		coupons:      coupons,
		notifier:     notifier,
		log:          log,
	}
}

// CreateIntent returns the reservation's payment, creating a pending one
// for the current total if none exists yet.
func (s *PaymentService) CreateIntent(ctx context.Context, reservationID string, identity Identity) (*models.Payment, error) {
	r, err := s.reservations.GetForPayment(ctx, reservationID, identity)
	if err != nil {
		return nil, err
	}

	existing, err := s.payments.GetByReservationID(ctx, r.ID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		return nil, err
	}
	if r.Status != constants.ReservationStatusPending {
		return nil, apperrors.Conflict("reservation is not pending")
	}

	payment := &models.Payment{
		ID:            uuid.NewString(),
		TenantID:      r.TenantID,
		ReservationID: r.ID,
		Amount:        r.TotalPrice,
		Status:        constants.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeConflict) {
			// lost a concurrent create; the winner's record is the answer
			return s.payments.GetByReservationID(ctx, r.ID)
		}
		return nil, err
	}
	s.log.Info("payment intent %s created for reservation %s (%s)", payment.ID, r.ID, payment.Amount.StringFixed(2))
	return payment, nil
}

// Settle handles the payment-success signal: the payment completes and the
// reservation is confirmed in one unit. Coupon redemption and the
// notification afterwards are best effort.
func (s *PaymentService) Settle(ctx context.Context, reservationID string) (*models.Payment, error) {
	var settled *models.Payment
	r, err := s.reservations.ConfirmPayment(ctx, reservationID, func(ctx context.Context, r *models.Reservation) error {
		p, err := s.payments.GetByReservationID(ctx, r.ID)
		if err != nil {
			return err
		}
		if p.Status == constants.PaymentStatusCompleted {
			return apperrors.Conflict("payment already settled")
		}
		p.Status = constants.PaymentStatusCompleted
		if err := s.payments.Update(ctx, p); err != nil {
			return err
		}
		settled = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if r.CouponID != nil && s.coupons != nil {
		if err := s.coupons.CommitUsage(ctx, *r.CouponID); err != nil {
			s.log.Warn("commit coupon usage for reservation %s failed: %v", r.ID, err)
		}
	}
	s.log.Info("payment %s settled, reservation %s confirmed", settled.ID, r.ID)
	s.notifier.Notify(constants.EventPaymentConfirmed, eventFor(r, constants.ReservationStatusPending))
	return settled, nil
}
