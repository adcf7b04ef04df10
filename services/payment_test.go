package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
)

func TestCreateIntent_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r := env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")

	first, err := env.payments.CreateIntent(env.ctx, r.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentStatusPending, first.Status)
	assert.True(t, decimal.NewFromInt(200).Equal(first.Amount))

	second, err := env.payments.CreateIntent(env.ctx, r.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateIntent_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r := env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")

	_, err := env.payments.CreateIntent(env.ctx, "missing", guest)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)

	_, err = env.payments.CreateIntent(env.ctx, r.ID, otherGuest)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	_, err = env.reservations.Cancel(env.ctx, r.ID, guest)
	require.NoError(t, err)
	_, err = env.payments.CreateIntent(env.ctx, r.ID, guest)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict))
}

func TestSettle_ConfirmsReservation(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r := env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")

	_, err := env.payments.CreateIntent(env.ctx, r.ID, guest)
	require.NoError(t, err)

	payment, err := env.payments.Settle(env.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentStatusCompleted, payment.Status)

	stored, err := env.reservations.FindOne(env.ctx, r.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusConfirmed, stored.Status)
	assert.Contains(t, env.notifier.Events(), constants.EventPaymentConfirmed)

	_, err = env.payments.Settle(env.ctx, r.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict), "a confirmed reservation cannot be settled again")
}

func TestSettle_RequiresPayment(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r := env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")

	_, err := env.payments.Settle(env.ctx, r.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)

	stored, _ := env.stores.Reservations.GetByID(env.ctx, r.ID)
	assert.Equal(t, constants.ReservationStatusPending, stored.Status, "nothing is written on failure")

	_, err = env.payments.Settle(env.ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
}

func TestSettle_CommitsCouponUsage(t *testing.T) {
	coupons := &mockCoupons{}
	coupons.On("Validate", mock.Anything, testTenant, "TEN", mock.Anything).
		Return(CouponResult{Valid: true, CouponID: "c1", Discount: decimal.NewFromInt(20), FinalAmount: decimal.NewFromInt(180)}, nil)
	coupons.On("CommitUsage", mock.Anything, "c1").Return(nil).Once()

	env := newTestEnv(t, coupons)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r, err := env.reservations.Create(env.ctx, guest, ReservationInput{RoomID: room.ID, CheckIn: date("2024-06-01"), CheckOut: date("2024-06-03"), CouponCode: "TEN"})
	require.NoError(t, err)

	payment, err := env.payments.CreateIntent(env.ctx, r.ID, guest)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(180).Equal(payment.Amount))

	_, err = env.payments.Settle(env.ctx, r.ID)
	require.NoError(t, err)
	coupons.AssertExpectations(t)
}

func TestSettle_CouponCommitFailureIsSwallowed(t *testing.T) {
	coupons := &mockCoupons{}
	coupons.On("Validate", mock.Anything, testTenant, "TEN", mock.Anything).
		Return(CouponResult{Valid: true, CouponID: "c1", Discount: decimal.NewFromInt(20), FinalAmount: decimal.NewFromInt(180)}, nil)
	coupons.On("CommitUsage", mock.Anything, "c1").Return(errors.New("coupon store down"))

	env := newTestEnv(t, coupons)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r, err := env.reservations.Create(env.ctx, guest, ReservationInput{RoomID: room.ID, CheckIn: date("2024-06-01"), CheckOut: date("2024-06-03"), CouponCode: "TEN"})
	require.NoError(t, err)
	_, err = env.payments.CreateIntent(env.ctx, r.ID, guest)
	require.NoError(t, err)

	payment, err := env.payments.Settle(env.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentStatusCompleted, payment.Status)
}
