package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
)

// NewMemoryStores returns process-local stores. They enforce the same
// uniqueness and overlap rules as the Postgres schema.
func NewMemoryStores() *Stores {
	return &Stores{
		Rooms:        &MemoryRoomStore{rooms: map[string]models.Room{}},
		Reservations: &MemoryReservationStore{items: map[string]models.Reservation{}},
		Blocks:       &MemoryBlockStore{items: map[string]models.RoomBlock{}},
		Payments:     &MemoryPaymentStore{items: map[string]models.Payment{}},
		Discounts:    &MemoryDiscountStore{items: map[string]models.Discount{}},
	}
}

func containsID(ids []string, id string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func copyRoom(r models.Room) models.Room {
	if r.Amenities != nil {
		r.Amenities = append([]string(nil), r.Amenities...)
	}
	return r
}

type MemoryRoomStore struct {
	mu    sync.RWMutex
	rooms map[string]models.Room
}

func (s *MemoryRoomStore) numberTaken(tenantID, number, exceptID string) bool {
	for _, r := range s.rooms {
		if r.TenantID == tenantID && r.Number == number && r.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *MemoryRoomStore) Create(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return apperrors.Conflict("duplicate record")
	}
	if s.numberTaken(room.TenantID, room.Number, "") {
		return apperrors.Conflict("duplicate record")
	}
	now := time.Now()
	room.CreatedAt, room.UpdatedAt = now, now
	s.rooms[room.ID] = copyRoom(*room)
	return nil
}

func (s *MemoryRoomStore) Update(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.rooms[room.ID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	if s.numberTaken(old.TenantID, room.Number, room.ID) {
		return apperrors.Conflict("duplicate record")
	}
	room.TenantID = old.TenantID
	room.CreatedAt = old.CreatedAt
	room.UpdatedAt = time.Now()
	s.rooms[room.ID] = copyRoom(*room)
	return nil
}

func (s *MemoryRoomStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return apperrors.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

func (s *MemoryRoomStore) GetByID(_ context.Context, id string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	r = copyRoom(r)
	return &r, nil
}

func (s *MemoryRoomStore) GetByNumber(_ context.Context, tenantID, number string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.TenantID == tenantID && r.Number == number {
			r = copyRoom(r)
			return &r, nil
		}
	}
	return nil, apperrors.ErrRoomNotFound
}

func (s *MemoryRoomStore) List(_ context.Context, filter RoomFilter) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if filter.TenantID != "" && r.TenantID != filter.TenantID {
			continue
		}
		if !containsID(filter.IDs, r.ID) {
			continue
		}
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.AvailableOnly && !r.IsAvailable {
			continue
		}
		out = append(out, copyRoom(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type MemoryReservationStore struct {
	mu    sync.RWMutex
	items map[string]models.Reservation
}

func (s *MemoryReservationStore) Create(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID]; ok {
		return apperrors.Conflict("duplicate record")
	}
	if r.IsActive() {
		for _, other := range s.items {
			if other.RoomID == r.RoomID && other.IsActive() && other.Overlaps(r.CheckIn, r.CheckOut) {
				return apperrors.Conflict("room is already booked for an overlapping range")
			}
		}
	}
	if r.Version == 0 {
		r.Version = 1
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	s.items[r.ID] = *r
	return nil
}

func (s *MemoryReservationStore) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	return &r, nil
}

func (s *MemoryReservationStore) List(_ context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reservation, 0)
	for _, r := range s.items {
		if filter.TenantID != "" && r.TenantID != filter.TenantID {
			continue
		}
		if !containsID(filter.RoomIDs, r.RoomID) {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.ActiveOnly && !r.IsActive() {
			continue
		}
		if filter.From != nil && filter.To != nil && !r.Overlaps(*filter.From, *filter.To) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CheckIn.Before(out[j].CheckIn)
	})
	return out, nil
}

func (s *MemoryReservationStore) Update(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[r.ID]
	if !ok {
		return apperrors.ErrReservationNotFound
	}
	if old.Version != r.Version {
		return apperrors.ErrStaleWrite
	}
	updated := old
	updated.TotalPrice = r.TotalPrice
	updated.DiscountAmount = r.DiscountAmount
	updated.CouponCode = r.CouponCode
	updated.CouponID = r.CouponID
	updated.GuestNotes = r.GuestNotes
	updated.Status = r.Status
	updated.QRToken = r.QRToken
	updated.CheckedInAt = r.CheckedInAt
	updated.CheckedOutAt = r.CheckedOutAt
	updated.Version = old.Version + 1
	updated.UpdatedAt = time.Now()
	s.items[r.ID] = updated
	r.Version = updated.Version
	r.UpdatedAt = updated.UpdatedAt
	return nil
}

type MemoryBlockStore struct {
	mu    sync.RWMutex
	items map[string]models.RoomBlock
}

func (s *MemoryBlockStore) Create(_ context.Context, b *models.RoomBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[b.ID]; ok {
		return apperrors.Conflict("duplicate record")
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	s.items[b.ID] = *b
	return nil
}

func (s *MemoryBlockStore) Update(_ context.Context, b *models.RoomBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[b.ID]
	if !ok {
		return apperrors.ErrBlockNotFound
	}
	b.TenantID = old.TenantID
	b.CreatedAt = old.CreatedAt
	b.UpdatedAt = time.Now()
	s.items[b.ID] = *b
	return nil
}

func (s *MemoryBlockStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return apperrors.ErrBlockNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryBlockStore) GetByID(_ context.Context, id string) (*models.RoomBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrBlockNotFound
	}
	return &b, nil
}

func (s *MemoryBlockStore) List(_ context.Context, filter BlockFilter) ([]models.RoomBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RoomBlock, 0)
	for _, b := range s.items {
		if filter.TenantID != "" && b.TenantID != filter.TenantID {
			continue
		}
		if !containsID(filter.RoomIDs, b.RoomID) {
			continue
		}
		if filter.ActiveOnly && !b.IsActive {
			continue
		}
		if filter.ExcludeID != "" && b.ID == filter.ExcludeID {
			continue
		}
		if filter.From != nil && filter.To != nil && !b.Overlaps(*filter.From, *filter.To) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

type MemoryPaymentStore struct {
	mu    sync.RWMutex
	items map[string]models.Payment // keyed by reservation id
}

func (s *MemoryPaymentStore) Create(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ReservationID]; ok {
		return apperrors.Conflict("duplicate record")
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	s.items[p.ReservationID] = *p
	return nil
}

func (s *MemoryPaymentStore) GetByReservationID(_ context.Context, reservationID string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[reservationID]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return &p, nil
}

func (s *MemoryPaymentStore) Update(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[p.ReservationID]
	if !ok || old.ID != p.ID {
		return apperrors.ErrPaymentNotFound
	}
	old.Amount = p.Amount
	old.Status = p.Status
	old.UpdatedAt = time.Now()
	s.items[p.ReservationID] = old
	return nil
}

type MemoryDiscountStore struct {
	mu    sync.RWMutex
	items map[string]models.Discount
}

func (s *MemoryDiscountStore) Create(_ context.Context, d *models.Discount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.items {
		if other.ID == d.ID || (other.TenantID == d.TenantID && other.Code == d.Code) {
			return apperrors.Conflict("duplicate record")
		}
	}
	now := time.Now()
	d.CreatedAt, d.UpdatedAt = now, now
	s.items[d.ID] = *d
	return nil
}

func (s *MemoryDiscountStore) GetByID(_ context.Context, id string) (*models.Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrDiscountNotFound
	}
	return &d, nil
}

func (s *MemoryDiscountStore) GetByCode(_ context.Context, tenantID, code string) (*models.Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.items {
		if d.TenantID == tenantID && d.Code == code {
			return &d, nil
		}
	}
	return nil, apperrors.ErrDiscountNotFound
}

func (s *MemoryDiscountStore) List(_ context.Context, tenantID string) ([]models.Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Discount, 0, len(s.items))
	for _, d := range s.items {
		if tenantID != "" && d.TenantID != tenantID {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryDiscountStore) IncrementUsage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.items[id]
	if !ok {
		return apperrors.ErrDiscountNotFound
	}
	if d.Quantity > 0 && d.UsedCount >= d.Quantity {
		return apperrors.Conflict("discount usage limit reached")
	}
	d.UsedCount++
	d.UpdatedAt = time.Now()
	s.items[id] = d
	return nil
}
