package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
)

func day(s string) time.Time {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMemoryRoomStore_NumberUniquePerTenant(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	require.NoError(t, stores.Rooms.Create(ctx, &models.Room{ID: "r1", TenantID: "t1", Number: "101", PricePerNight: decimal.NewFromInt(100)}))
	err := stores.Rooms.Create(ctx, &models.Room{ID: "r2", TenantID: "t1", Number: "101"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict))

	require.NoError(t, stores.Rooms.Create(ctx, &models.Room{ID: "r3", TenantID: "t2", Number: "101"}))

	rooms, err := stores.Rooms.List(ctx, RoomFilter{TenantID: "t1"})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestMemoryRoomStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	require.NoError(t, stores.Rooms.Create(ctx, &models.Room{ID: "r1", TenantID: "t1", Number: "101", Amenities: []string{"wifi"}}))

	got, err := stores.Rooms.GetByID(ctx, "r1")
	require.NoError(t, err)
	got.Amenities[0] = "tv"

	again, err := stores.Rooms.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "wifi", again.Amenities[0])
}

func TestMemoryReservationStore_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	first := &models.Reservation{ID: "a", RoomID: "r1", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-03"), Status: constants.ReservationStatusPending}
	require.NoError(t, stores.Reservations.Create(ctx, first))

	overlap := &models.Reservation{ID: "b", RoomID: "r1", CheckIn: day("2024-06-02"), CheckOut: day("2024-06-04"), Status: constants.ReservationStatusPending}
	assert.True(t, apperrors.HasCode(stores.Reservations.Create(ctx, overlap), apperrors.ErrCodeConflict))

	adjacent := &models.Reservation{ID: "c", RoomID: "r1", CheckIn: day("2024-06-03"), CheckOut: day("2024-06-05"), Status: constants.ReservationStatusPending}
	assert.NoError(t, stores.Reservations.Create(ctx, adjacent))

	from, to := day("2024-06-02"), day("2024-06-03")
	list, err := stores.Reservations.List(ctx, ReservationFilter{RoomIDs: []string{"r1"}, From: &from, To: &to, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestMemoryReservationStore_VersionCheck(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	r := &models.Reservation{ID: "a", RoomID: "r1", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-03"), Status: constants.ReservationStatusPending}
	require.NoError(t, stores.Reservations.Create(ctx, r))
	assert.Equal(t, 1, r.Version)

	copyA, _ := stores.Reservations.GetByID(ctx, "a")
	copyB, _ := stores.Reservations.GetByID(ctx, "a")

	copyA.Status = constants.ReservationStatusConfirmed
	require.NoError(t, stores.Reservations.Update(ctx, copyA))
	assert.Equal(t, 2, copyA.Version)

	copyB.Status = constants.ReservationStatusCancelled
	err := stores.Reservations.Update(ctx, copyB)
	assert.ErrorIs(t, err, apperrors.ErrStaleWrite)

	stored, _ := stores.Reservations.GetByID(ctx, "a")
	assert.Equal(t, constants.ReservationStatusConfirmed, stored.Status)
}

func TestMemoryDiscountStore_IncrementUsage(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	require.NoError(t, stores.Discounts.Create(ctx, &models.Discount{ID: "d1", TenantID: "t1", Code: "SUMMER", Quantity: 1}))
	assert.True(t, apperrors.HasCode(stores.Discounts.Create(ctx, &models.Discount{ID: "d2", TenantID: "t1", Code: "SUMMER"}), apperrors.ErrCodeConflict))

	require.NoError(t, stores.Discounts.IncrementUsage(ctx, "d1"))
	assert.True(t, apperrors.HasCode(stores.Discounts.IncrementUsage(ctx, "d1"), apperrors.ErrCodeConflict))
}

func TestMemoryPaymentStore_OnePerReservation(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	require.NoError(t, stores.Payments.Create(ctx, &models.Payment{ID: "p1", ReservationID: "a"}))
	assert.True(t, apperrors.HasCode(stores.Payments.Create(ctx, &models.Payment{ID: "p2", ReservationID: "a"}), apperrors.ErrCodeConflict))

	_, err := stores.Payments.GetByReservationID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}

func TestLocalRoomLocker_Serializes(t *testing.T) {
	locker := NewLocalRoomLocker()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = locker.WithRoomLock(context.Background(), "t1", "r1", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, locker.locks)
}

func TestLocalRoomLocker_CancelledContext(t *testing.T) {
	locker := NewLocalRoomLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := locker.WithRoomLock(ctx, "t1", "r1", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
