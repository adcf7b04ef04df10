package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
	"hotelbooking/validator"
)

type RoomInput struct {
	Number        string
	Type          string
	PricePerNight decimal.Decimal
	MaxOccupancy  int
	IsAvailable   *bool
	RatingAverage float64
	Amenities     []string
	ImageURL      *string
}

// RoomPatch carries only the fields being changed; nil means unchanged.
type RoomPatch struct {
	Number        *string
	Type          *string
	PricePerNight *decimal.Decimal
	MaxOccupancy  *int
	IsAvailable   *bool
	RatingAverage *float64
	Amenities     []string
	ImageURL      *string
}

// CatalogReader is implemented by CatalogService and CachedCatalog.
type CatalogReader interface {
	Get(ctx context.Context, id string) (*models.Room, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}

type CatalogService struct {
	rooms        repository.RoomStore
	reservations repository.ReservationStore
	blocks       repository.BlockStore
	availability *AvailabilityService
	locker       repository.RoomLocker
	cache        Cache
	log          logger.Logger
	clock        Clock
}

func NewCatalogService(stores *repository.Stores, availability *AvailabilityService, locker repository.RoomLocker, cache Cache, log logger.Logger, clock Clock) *CatalogService {
	return &CatalogService{
		rooms:        stores.Rooms,
		reservations: stores.Reservations,
		blocks:       stores.Blocks,
		availability: availability,
		locker:       locker,
		cache:        cache,
		log:          log,
		clock:        clock,
	}
}

func normalizeAmenities(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func (s *CatalogService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	if tenantID == "" {
		return nil, apperrors.ErrTenantRequired
	}

	room := &models.Room{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		Number:        strings.TrimSpace(in.Number),
		Type:          in.Type,
		PricePerNight: in.PricePerNight,
		MaxOccupancy:  in.MaxOccupancy,
		IsAvailable:   true,
		RatingAverage: in.RatingAverage,
		Amenities:     normalizeAmenities(in.Amenities),
		ImageURL:      in.ImageURL,
	}
	if in.IsAvailable != nil {
		room.IsAvailable = *in.IsAvailable
	}
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}
	if err := s.ensureNumberFree(ctx, tenantID, room.Number, ""); err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	s.log.Info("room %s created in tenant %s", room.Number, tenantID)
	return room, nil
}

func (s *CatalogService) ensureNumberFree(ctx context.Context, tenantID, number, exceptID string) error {
	existing, err := s.rooms.GetByNumber(ctx, tenantID, number)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != exceptID {
		return apperrors.Conflict("room number " + number + " already exists")
	}
	return nil
}

// Get returns the room when it is visible in the caller's tenant.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Room, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inTenant(tenantID, room.TenantID) {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, patch RoomPatch) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	numberChanged := false
	if patch.Number != nil {
		n := strings.TrimSpace(*patch.Number)
		numberChanged = n != room.Number
		room.Number = n
	}
	if patch.Type != nil {
		room.Type = *patch.Type
	}
	if patch.PricePerNight != nil {
		room.PricePerNight = *patch.PricePerNight
	}
	if patch.MaxOccupancy != nil {
		room.MaxOccupancy = *patch.MaxOccupancy
	}
	if patch.IsAvailable != nil {
		room.IsAvailable = *patch.IsAvailable
	}
	if patch.RatingAverage != nil {
		room.RatingAverage = *patch.RatingAverage
	}
	if patch.Amenities != nil {
		room.Amenities = normalizeAmenities(patch.Amenities)
	}
	if patch.ImageURL != nil {
		room.ImageURL = patch.ImageURL
	}

	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}
	if numberChanged {
		if err := s.ensureNumberFree(ctx, room.TenantID, room.Number, room.ID); err != nil {
			return nil, err
		}
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	invalidateRoom(ctx, s.cache, s.log, room.TenantID, room.ID)
	return room, nil
}

// Remove deletes a room that no current or future reservation references.
// Its blocks go with it.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	room, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.locker.WithRoomLock(ctx, room.TenantID, room.ID, func(ctx context.Context) error {
		today := s.clock.today()
		far := today.AddDate(100, 0, 0)
		live, err := s.reservations.List(ctx, repository.ReservationFilter{
			TenantID:   room.TenantID,
			RoomIDs:    []string{room.ID},
			ActiveOnly: true,
			From:       &today,
			To:         &far,
		})
		if err != nil {
			return err
		}
		for _, r := range live {
			if r.CheckOut.After(today) && r.Status != constants.ReservationStatusCompleted {
				return apperrors.Conflict("room has upcoming reservations")
			}
		}

		blocks, err := s.blocks.List(ctx, repository.BlockFilter{TenantID: room.TenantID, RoomIDs: []string{room.ID}})
		if err != nil {
			return err
		}
		for _, b := range blocks {
			if err := s.blocks.Delete(ctx, b.ID); err != nil {
				return err
			}
		}
		return s.rooms.Delete(ctx, room.ID)
	})
	if err != nil {
		return err
	}
	invalidateRoom(ctx, s.cache, s.log, room.TenantID, room.ID)
	s.log.Info("room %s removed from tenant %s", room.Number, room.TenantID)
	return nil
}

// CachedCatalog fronts the catalog reads with the cache.
type CachedCatalog struct {
	inner CatalogReader
	cache Cache
	ttl   CacheTTL
	log   logger.Logger
}

func NewCachedCatalog(inner CatalogReader, cache Cache, ttl CacheTTL, log logger.Logger) *CachedCatalog {
	return &CachedCatalog{inner: inner, cache: cache, ttl: ttl, log: log}
}

func (c *CachedCatalog) Get(ctx context.Context, id string) (*models.Room, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	return readThrough(ctx, c.cache, c.log, RoomKey(tenantID, id), c.ttl.Room, func() (*models.Room, error) {
		return c.inner.Get(ctx, id)
	})
}

// Search caches an unfiltered listing under the list TTL and everything
// else under the shorter search TTL.
func (c *CachedCatalog) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	op, ttl := constants.CacheOpSearch, c.ttl.Search
	if params.isPlainListing() {
		op, ttl = constants.CacheOpRoomList, c.ttl.Room
	}
	return readThrough(ctx, c.cache, c.log, CacheKey(tenantID, op, params), ttl, func() (*SearchResult, error) {
		return c.inner.Search(ctx, params)
	})
}

func timeOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := NormalizeDate(*t)
	return &d
}
