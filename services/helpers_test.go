package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelbooking/constants"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
)

const testTenant = "hotel-a"

var (
	guest      = Identity{UserID: "guest-1", Role: constants.RoleGuest, TenantID: testTenant}
	otherGuest = Identity{UserID: "guest-2", Role: constants.RoleGuest, TenantID: testTenant}
	admin      = Identity{UserID: "admin-1", Role: constants.RoleAdmin, TenantID: testTenant}
)

func date(s string) time.Time {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(s string) Clock {
	now := date(s).Add(9 * time.Hour)
	return func() time.Time { return now }
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(event string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type mockCoupons struct {
	mock.Mock
}

func (m *mockCoupons) Validate(ctx context.Context, tenantID, code string, subtotal decimal.Decimal) (CouponResult, error) {
	args := m.Called(ctx, tenantID, code, subtotal)
	return args.Get(0).(CouponResult), args.Error(1)
}

func (m *mockCoupons) CommitUsage(ctx context.Context, couponID string) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

type testEnv struct {
	ctx          context.Context
	stores       *repository.Stores
	cache        Cache
	notifier     *recordingNotifier
	availability *AvailabilityService
	catalog      *CatalogService
	blocks       *RoomBlockService
	reservations *ReservationService
	payments     *PaymentService
	discounts    *DiscountService
}

// newTestEnv wires every service over in-memory stores with "today" pinned
// to 2024-05-01. A nil coupons uses the discount-backed resolver.
func newTestEnv(t *testing.T, coupons CouponResolver) *testEnv {
	t.Helper()
	log := logger.NewDiscardLogger()
	clock := fixedClock("2024-05-01")
	stores := repository.NewMemoryStores()
	locker := repository.NewLocalRoomLocker()
	cache := Cache(NoopCache{})
	notifier := &recordingNotifier{}
	if coupons == nil {
		coupons = NewDiscountResolver(stores.Discounts, clock)
	}

	availability := NewAvailabilityService(stores, log)
	reservations := NewReservationService(stores, availability, coupons, notifier, locker, cache, log, clock)
	return &testEnv{
		ctx:          WithIdentity(WithTenant(context.Background(), testTenant), admin),
		stores:       stores,
		cache:        cache,
		notifier:     notifier,
		availability: availability,
		catalog:      NewCatalogService(stores, availability, locker, cache, log, clock),
		blocks:       NewRoomBlockService(stores, locker, cache, log, clock),
		reservations: reservations,
		payments:     NewPaymentService(stores.Payments, reservations, coupons, notifier, log),
		discounts:    NewDiscountService(stores.Discounts, log),
	}
}

func (e *testEnv) addRoom(t *testing.T, number, roomType string, price int64, amenities ...string) *models.Room {
	t.Helper()
	room, err := e.catalog.Create(e.ctx, RoomInput{
		Number:        number,
		Type:          roomType,
		PricePerNight: decimal.NewFromInt(price),
		MaxOccupancy:  2,
		RatingAverage: 4,
		Amenities:     amenities,
	})
	require.NoError(t, err)
	return room
}

func (e *testEnv) book(t *testing.T, who Identity, roomID, from, to string) *models.Reservation {
	t.Helper()
	r, err := e.reservations.Create(e.ctx, who, ReservationInput{RoomID: roomID, CheckIn: date(from), CheckOut: date(to)})
	require.NoError(t, err)
	return r
}

// confirm drives a reservation through intent and settle.
func (e *testEnv) confirm(t *testing.T, r *models.Reservation) {
	t.Helper()
	_, err := e.payments.CreateIntent(e.ctx, r.ID, admin)
	require.NoError(t, err)
	_, err = e.payments.Settle(e.ctx, r.ID)
	require.NoError(t, err)
}
