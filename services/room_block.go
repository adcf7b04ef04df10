package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
	"hotelbooking/validator"
)

type BlockInput struct {
	RoomID    string
	StartDate time.Time
	EndDate   time.Time
	Type      string
	Reason    *string
	IsActive  *bool
}

type BlockPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      *string
	Reason    *string
	IsActive  *bool
}

// RoomBlockService withholds rooms from booking for maintenance or events.
type RoomBlockService struct {
	rooms        repository.RoomStore
	reservations repository.ReservationStore
	blocks       repository.BlockStore
	locker       repository.RoomLocker
	cache        Cache
	log          logger.Logger
	clock        Clock
}

func NewRoomBlockService(stores *repository.Stores, locker repository.RoomLocker, cache Cache, log logger.Logger, clock Clock) *RoomBlockService {
	return &RoomBlockService{
		rooms:        stores.Rooms,
		reservations: stores.Reservations,
		blocks:       stores.Blocks,
		locker:       locker,
		cache:        cache,
		log:          log,
		clock:        clock,
	}
}

func (s *RoomBlockService) room(ctx context.Context, tenantID, roomID string) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !inTenant(tenantID, room.TenantID) {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

// checkConflicts rejects a window that overlaps a live reservation or
// another active block of the same room.
func (s *RoomBlockService) checkConflicts(ctx context.Context, room *models.Room, from, to time.Time, excludeID string) error {
	reservations, err := s.reservations.List(ctx, repository.ReservationFilter{
		TenantID:   room.TenantID,
		RoomIDs:    []string{room.ID},
		ActiveOnly: true,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return err
	}
	if len(reservations) > 0 {
		return apperrors.Conflict("room has reservations in the requested period")
	}

	blocks, err := s.blocks.List(ctx, repository.BlockFilter{
		TenantID:   room.TenantID,
		RoomIDs:    []string{room.ID},
		ActiveOnly: true,
		ExcludeID:  excludeID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return err
	}
	if len(blocks) > 0 {
		return apperrors.Conflict("room already has a block in the requested period")
	}
	return nil
}

func (s *RoomBlockService) Create(ctx context.Context, in BlockInput) (*models.RoomBlock, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	room, err := s.room(ctx, tenantID, in.RoomID)
	if err != nil {
		return nil, err
	}

	start, end := NormalizeDate(in.StartDate), NormalizeDate(in.EndDate)
	if err := validator.ValidateDateRange(start, end, "block"); err != nil {
		return nil, err
	}
	if start.Before(s.clock.today()) {
		return nil, apperrors.Validation("block start date cannot be in the past")
	}
	if err := validator.ValidateBlockType(in.Type); err != nil {
		return nil, err
	}

	block := &models.RoomBlock{
		ID:        uuid.NewString(),
		TenantID:  room.TenantID,
		RoomID:    room.ID,
		StartDate: start,
		EndDate:   end,
		Type:      in.Type,
		Reason:    in.Reason,
		IsActive:  true,
	}
	if in.IsActive != nil {
		block.IsActive = *in.IsActive
	}

	err = s.locker.WithRoomLock(ctx, room.TenantID, room.ID, func(ctx context.Context) error {
		if err := s.checkConflicts(ctx, room, start, end, ""); err != nil {
			return err
		}
		return s.blocks.Create(ctx, block)
	})
	if err != nil {
		return nil, err
	}
	invalidateRoom(ctx, s.cache, s.log, room.TenantID, room.ID)
	s.log.Info("room %s blocked %s..%s (%s)", room.Number, start.Format(constants.DateLayout), end.Format(constants.DateLayout), block.Type)
	return block, nil
}

func (s *RoomBlockService) Get(ctx context.Context, id string) (*models.RoomBlock, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	block, err := s.blocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inTenant(tenantID, block.TenantID) {
		return nil, apperrors.ErrBlockNotFound
	}
	return block, nil
}

func (s *RoomBlockService) List(ctx context.Context, roomID string) ([]models.RoomBlock, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	filter := repository.BlockFilter{TenantID: tenantID}
	if roomID != "" {
		filter.RoomIDs = []string{roomID}
	}
	return s.blocks.List(ctx, filter)
}

// Update applies patch. Conflicts are re-checked when the window moves or
// an inactive block is switched back on.
func (s *RoomBlockService) Update(ctx context.Context, id string, patch BlockPatch) (*models.RoomBlock, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	room, err := s.room(ctx, current.TenantID, current.RoomID)
	if err != nil {
		return nil, err
	}

	var updated *models.RoomBlock
	err = s.locker.WithRoomLock(ctx, room.TenantID, room.ID, func(ctx context.Context) error {
		block, err := s.blocks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		wasActive := block.IsActive
		oldStart, oldEnd := block.StartDate, block.EndDate

		if patch.StartDate != nil {
			start := NormalizeDate(*patch.StartDate)
			if !start.Equal(oldStart) && start.Before(s.clock.today()) {
				return apperrors.Validation("block start date cannot be in the past")
			}
			block.StartDate = start
		}
		if patch.EndDate != nil {
			block.EndDate = NormalizeDate(*patch.EndDate)
		}
		if patch.Type != nil {
			if err := validator.ValidateBlockType(*patch.Type); err != nil {
				return err
			}
			block.Type = *patch.Type
		}
		if patch.Reason != nil {
			block.Reason = patch.Reason
		}
		if patch.IsActive != nil {
			block.IsActive = *patch.IsActive
		}
		if err := validator.ValidateDateRange(block.StartDate, block.EndDate, "block"); err != nil {
			return err
		}

		datesChanged := !block.StartDate.Equal(oldStart) || !block.EndDate.Equal(oldEnd)
		reactivated := !wasActive && block.IsActive
		if block.IsActive && (datesChanged || reactivated) {
			if err := s.checkConflicts(ctx, room, block.StartDate, block.EndDate, block.ID); err != nil {
				return err
			}
		}
		if err := s.blocks.Update(ctx, block); err != nil {
			return err
		}
		updated = block
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateRoom(ctx, s.cache, s.log, room.TenantID, room.ID)
	return updated, nil
}

// Remove hard deletes the block; reservations are untouched.
func (s *RoomBlockService) Remove(ctx context.Context, id string) error {
	block, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blocks.Delete(ctx, block.ID); err != nil {
		return err
	}
	invalidateRoom(ctx, s.cache, s.log, block.TenantID, block.RoomID)
	return nil
}
