package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
)

func statusByDate(days []CalendarDay, roomID string) map[string]string {
	out := make(map[string]string)
	for _, d := range days {
		if d.RoomID == roomID {
			out[d.Date] = d.Status
		}
	}
	return out
}

func TestCheckAvailability(t *testing.T) {
	env := newTestEnv(t, nil)
	booked := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	free := env.addRoom(t, "102", constants.RoomTypeDouble, 120)
	suite := env.addRoom(t, "201", constants.RoomTypeSuite, 300)
	env.book(t, guest, booked.ID, "2024-06-01", "2024-06-03")

	rooms, err := env.availability.CheckAvailability(env.ctx, testTenant, date("2024-06-02"), date("2024-06-04"), "")
	require.NoError(t, err)
	ids := roomIDs(rooms)
	assert.ElementsMatch(t, []string{free.ID, suite.ID}, ids)

	rooms, err = env.availability.CheckAvailability(env.ctx, testTenant, date("2024-06-03"), date("2024-06-04"), constants.RoomTypeDouble)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{booked.ID, free.ID}, roomIDs(rooms), "checkout day is free")
}

func TestCheckAvailability_ExcludesUnavailableAndBlocked(t *testing.T) {
	env := newTestEnv(t, nil)
	closed := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	blocked := env.addRoom(t, "102", constants.RoomTypeDouble, 100)
	open := env.addRoom(t, "103", constants.RoomTypeDouble, 100)

	off := false
	_, err := env.catalog.Update(env.ctx, closed.ID, RoomPatch{IsAvailable: &off})
	require.NoError(t, err)
	_, err = env.blocks.Create(env.ctx, BlockInput{RoomID: blocked.ID, StartDate: date("2024-06-01"), EndDate: date("2024-06-10"), Type: constants.BlockTypeEvent})
	require.NoError(t, err)

	rooms, err := env.availability.CheckAvailability(env.ctx, testTenant, date("2024-06-05"), date("2024-06-06"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{open.ID}, roomIDs(rooms))
}

func TestCheckAvailability_EmptyWindow(t *testing.T) {
	env := newTestEnv(t, nil)
	env.addRoom(t, "101", constants.RoomTypeDouble, 100)

	rooms, err := env.availability.CheckAvailability(env.ctx, testTenant, date("2024-06-05"), date("2024-06-05"), "")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestCalendar_HalfOpenReservation(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")

	days, err := env.availability.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2024-06-05"), room.ID)
	require.NoError(t, err)
	require.Len(t, days, 5)

	assert.Equal(t, map[string]string{
		"2024-06-01": constants.DayStatusReserved,
		"2024-06-02": constants.DayStatusReserved,
		"2024-06-03": constants.DayStatusAvailable,
		"2024-06-04": constants.DayStatusAvailable,
		"2024-06-05": constants.DayStatusAvailable,
	}, statusByDate(days, room.ID))
}

func TestCalendar_BlockStatuses(t *testing.T) {
	env := newTestEnv(t, nil)
	maint := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	event := env.addRoom(t, "102", constants.RoomTypeDouble, 100)

	_, err := env.blocks.Create(env.ctx, BlockInput{RoomID: maint.ID, StartDate: date("2024-07-01"), EndDate: date("2024-07-03"), Type: constants.BlockTypeMaintenance})
	require.NoError(t, err)
	_, err = env.blocks.Create(env.ctx, BlockInput{RoomID: event.ID, StartDate: date("2024-07-02"), EndDate: date("2024-07-03"), Type: constants.BlockTypeEvent})
	require.NoError(t, err)

	days, err := env.availability.Calendar(env.ctx, testTenant, date("2024-07-01"), date("2024-07-03"), "")
	require.NoError(t, err)
	assert.Len(t, days, 6, "one row per room per date")

	assert.Equal(t, map[string]string{
		"2024-07-01": constants.DayStatusMaintenance,
		"2024-07-02": constants.DayStatusMaintenance,
		"2024-07-03": constants.DayStatusAvailable,
	}, statusByDate(days, maint.ID))
	assert.Equal(t, map[string]string{
		"2024-07-01": constants.DayStatusAvailable,
		"2024-07-02": constants.DayStatusBlocked,
		"2024-07-03": constants.DayStatusAvailable,
	}, statusByDate(days, event.ID))
}

func TestCalendar_ReservationWinsOverBlock(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)
	r := env.book(t, guest, room.ID, "2024-06-01", "2024-06-03")

	// the service refuses overlapping blocks, so move it through the store
	_, err := env.blocks.Create(env.ctx, BlockInput{RoomID: room.ID, StartDate: date("2024-06-05"), EndDate: date("2024-06-06"), Type: constants.BlockTypeMaintenance})
	require.NoError(t, err)
	blocks, err := env.blocks.List(env.ctx, room.ID)
	require.NoError(t, err)
	block := blocks[0]
	block.StartDate, block.EndDate = r.CheckIn, r.CheckOut
	require.NoError(t, env.stores.Blocks.Update(env.ctx, &block))

	days, err := env.availability.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2024-06-02"), room.ID)
	require.NoError(t, err)
	for _, d := range days {
		assert.Equal(t, constants.DayStatusReserved, d.Status)
	}
}

func TestCalendar_ReversedRangeAndUnknownRoom(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)

	days, err := env.availability.Calendar(env.ctx, testTenant, date("2024-06-05"), date("2024-06-01"), room.ID)
	require.NoError(t, err)
	assert.Empty(t, days)

	days, err = env.availability.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2024-06-05"), "missing")
	require.NoError(t, err)
	assert.Empty(t, days)

	days, err = env.availability.Calendar(env.ctx, "hotel-b", date("2024-06-01"), date("2024-06-05"), room.ID)
	require.NoError(t, err)
	assert.Empty(t, days, "rooms of other tenants are invisible")
}

func TestCalendar_SingleDay(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)

	days, err := env.availability.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2024-06-01"), room.ID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-06-01", days[0].Date)
}

func TestAvailability_RangeLimit(t *testing.T) {
	env := newTestEnv(t, nil)
	room := env.addRoom(t, "101", constants.RoomTypeDouble, 100)

	days, err := env.availability.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2025-06-01"), room.ID)
	require.NoError(t, err)
	assert.Len(t, days, constants.MaxRangeDays)

	_, err = env.availability.Calendar(env.ctx, testTenant, date("2024-06-01"), date("2025-06-02"), room.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation), "got %v", err)

	_, err = env.availability.Calendar(env.ctx, testTenant, date("1900-01-01"), date("2899-12-31"), "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation), "got %v", err)

	rooms, err := env.availability.CheckAvailability(env.ctx, testTenant, date("2024-06-01"), date("2025-06-02"), "")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = env.availability.CheckAvailability(env.ctx, testTenant, date("2024-06-01"), date("2025-06-03"), "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation), "got %v", err)
}
