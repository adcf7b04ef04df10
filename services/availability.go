package services

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
)

// CalendarDay is one cell of the occupancy calendar.
type CalendarDay struct {
	RoomID string `json:"roomId"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// AvailabilityReader is implemented by AvailabilityService and its cached
// wrapper.
type AvailabilityReader interface {
	CheckAvailability(ctx context.Context, tenantID string, checkIn, checkOut time.Time, roomType string) ([]models.Room, error)
	Calendar(ctx context.Context, tenantID string, start, end time.Time, roomID string) ([]CalendarDay, error)
}

// AvailabilityService computes free rooms and the per-day calendar.
// It is read-only.
type AvailabilityService struct {
	rooms        repository.RoomStore
	reservations repository.ReservationStore
	blocks       repository.BlockStore
	log          logger.Logger
}

func NewAvailabilityService(stores *repository.Stores, log logger.Logger) *AvailabilityService {
	return &AvailabilityService{
		rooms:        stores.Rooms,
		reservations: stores.Reservations,
		blocks:       stores.Blocks,
		log:          log,
	}
}

var errRangeTooWide = apperrors.Validation(fmt.Sprintf("date range cannot exceed %d days", constants.MaxRangeDays))

// CheckAvailability returns catalog-available rooms with no live reservation
// and no active block overlapping [checkIn, checkOut).
func (s *AvailabilityService) CheckAvailability(ctx context.Context, tenantID string, checkIn, checkOut time.Time, roomType string) ([]models.Room, error) {
	checkIn, checkOut = NormalizeDate(checkIn), NormalizeDate(checkOut)
	if !checkOut.After(checkIn) {
		return []models.Room{}, nil
	}
	if Nights(checkIn, checkOut) > constants.MaxRangeDays {
		return nil, errRangeTooWide
	}

	rooms, err := s.rooms.List(ctx, repository.RoomFilter{
		TenantID:      tenantID,
		Type:          roomType,
		AvailableOnly: true,
	})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return []models.Room{}, nil
	}

	busy, err := s.busyRooms(ctx, tenantID, roomIDs(rooms), checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	free := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !busy[room.ID] {
			free = append(free, room)
		}
	}
	return free, nil
}

// IsRoomFree reports whether roomID is among the rooms CheckAvailability
// returns for the window.
func (s *AvailabilityService) IsRoomFree(ctx context.Context, room *models.Room, checkIn, checkOut time.Time) (bool, error) {
	free, err := s.CheckAvailability(ctx, room.TenantID, checkIn, checkOut, room.Type)
	if err != nil {
		return false, err
	}
	for _, r := range free {
		if r.ID == room.ID {
			return true, nil
		}
	}
	return false, nil
}

func (s *AvailabilityService) busyRooms(ctx context.Context, tenantID string, ids []string, from, to time.Time) (map[string]bool, error) {
	reservations, err := s.reservations.List(ctx, repository.ReservationFilter{
		TenantID:   tenantID,
		RoomIDs:    ids,
		ActiveOnly: true,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.List(ctx, repository.BlockFilter{
		TenantID:   tenantID,
		RoomIDs:    ids,
		ActiveOnly: true,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return nil, err
	}

	busy := make(map[string]bool, len(reservations)+len(blocks))
	for _, r := range reservations {
		busy[r.RoomID] = true
	}
	for _, b := range blocks {
		busy[b.RoomID] = true
	}
	return busy, nil
}

// Calendar assigns one status per room per date in [start, end] inclusive.
// A reservation wins over a block; a reversed range yields no rows.
func (s *AvailabilityService) Calendar(ctx context.Context, tenantID string, start, end time.Time, roomID string) ([]CalendarDay, error) {
	start, end = NormalizeDate(start), NormalizeDate(end)
	if end.Before(start) {
		return []CalendarDay{}, nil
	}
	if Nights(start, end)+1 > constants.MaxRangeDays {
		return nil, errRangeTooWide
	}

	var rooms []models.Room
	if roomID != "" {
		room, err := s.rooms.GetByID(ctx, roomID)
		if err != nil || !inTenant(tenantID, room.TenantID) {
			return []CalendarDay{}, nil
		}
		rooms = []models.Room{*room}
	} else {
		var err error
		rooms, err = s.rooms.List(ctx, repository.RoomFilter{TenantID: tenantID})
		if err != nil {
			return nil, err
		}
	}
	if len(rooms) == 0 {
		return []CalendarDay{}, nil
	}

	ids := roomIDs(rooms)
	endExclusive := end.AddDate(0, 0, 1)
	reservations, err := s.reservations.List(ctx, repository.ReservationFilter{
		TenantID:   tenantID,
		RoomIDs:    ids,
		ActiveOnly: true,
		From:       &start,
		To:         &endExclusive,
	})
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.List(ctx, repository.BlockFilter{
		TenantID:   tenantID,
		RoomIDs:    ids,
		ActiveOnly: true,
		From:       &start,
		To:         &endExclusive,
	})
	if err != nil {
		return nil, err
	}

	resByRoom := make(map[string][]models.Reservation)
	for _, r := range reservations {
		resByRoom[r.RoomID] = append(resByRoom[r.RoomID], r)
	}
	blocksByRoom := make(map[string][]models.RoomBlock)
	for _, b := range blocks {
		blocksByRoom[b.RoomID] = append(blocksByRoom[b.RoomID], b)
	}

	days := int(endExclusive.Sub(start).Hours() / 24)
	out := make([]CalendarDay, 0, len(rooms)*days)
	for _, room := range rooms {
		for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
			out = append(out, CalendarDay{
				RoomID: room.ID,
				Date:   d.Format(constants.DateLayout),
				Status: dayStatus(d, resByRoom[room.ID], blocksByRoom[room.ID]),
			})
		}
	}
	return out, nil
}

func dayStatus(d time.Time, reservations []models.Reservation, blocks []models.RoomBlock) string {
	for i := range reservations {
		if reservations[i].Covers(d) {
			return constants.DayStatusReserved
		}
	}
	for i := range blocks {
		if blocks[i].Covers(d) {
			if blocks[i].Type == constants.BlockTypeMaintenance {
				return constants.DayStatusMaintenance
			}
			return constants.DayStatusBlocked
		}
	}
	return constants.DayStatusAvailable
}

func roomIDs(rooms []models.Room) []string {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}

// CachedAvailability fronts an AvailabilityReader with the cache.
type CachedAvailability struct {
	inner AvailabilityReader
	cache Cache
	ttl   time.Duration
	log   logger.Logger
}

func NewCachedAvailability(inner AvailabilityReader, cache Cache, ttl CacheTTL, log logger.Logger) *CachedAvailability {
	return &CachedAvailability{inner: inner, cache: cache, ttl: ttl.Availability, log: log}
}

type availabilityParams struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	RoomType string `json:"roomType"`
}

type calendarParams struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	RoomID string `json:"roomId"`
}

func (c *CachedAvailability) CheckAvailability(ctx context.Context, tenantID string, checkIn, checkOut time.Time, roomType string) ([]models.Room, error) {
	key := CacheKey(tenantID, constants.CacheOpAvailability, availabilityParams{
		CheckIn:  NormalizeDate(checkIn).Format(constants.DateLayout),
		CheckOut: NormalizeDate(checkOut).Format(constants.DateLayout),
		RoomType: roomType,
	})
	return readThrough(ctx, c.cache, c.log, key, c.ttl, func() ([]models.Room, error) {
		return c.inner.CheckAvailability(ctx, tenantID, checkIn, checkOut, roomType)
	})
}

func (c *CachedAvailability) Calendar(ctx context.Context, tenantID string, start, end time.Time, roomID string) ([]CalendarDay, error) {
	key := CacheKey(tenantID, constants.CacheOpCalendar, calendarParams{
		Start:  NormalizeDate(start).Format(constants.DateLayout),
		End:    NormalizeDate(end).Format(constants.DateLayout),
		RoomID: roomID,
	})
	return readThrough(ctx, c.cache, c.log, key, c.ttl, func() ([]CalendarDay, error) {
		return c.inner.Calendar(ctx, tenantID, start, end, roomID)
	})
}
