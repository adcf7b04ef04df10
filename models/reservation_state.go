package models

import (
	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
)

// ReservationState defines the transitions allowed from one status.
type ReservationState interface {
	Confirm(r *Reservation) error
	Cancel(r *Reservation) error
	Complete(r *Reservation) error
}

// PendingState awaits payment.
type PendingState struct{}

func (s *PendingState) Confirm(r *Reservation) error {
	r.Status = constants.ReservationStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(r *Reservation) error {
	r.Status = constants.ReservationStatusCancelled
	return nil
}

func (s *PendingState) Complete(r *Reservation) error {
	return apperrors.Conflict("cannot complete a pending reservation")
}

// ConfirmedState is paid and waiting for the stay.
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(r *Reservation) error {
	return apperrors.Conflict("reservation already confirmed")
}

func (s *ConfirmedState) Cancel(r *Reservation) error {
	r.Status = constants.ReservationStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(r *Reservation) error {
	r.Status = constants.ReservationStatusCompleted
	return nil
}

// CompletedState is terminal.
type CompletedState struct{}

func (s *CompletedState) Confirm(r *Reservation) error {
	return apperrors.Conflict("reservation already completed")
}

func (s *CompletedState) Cancel(r *Reservation) error {
	return apperrors.Conflict("cannot cancel a completed reservation")
}

func (s *CompletedState) Complete(r *Reservation) error {
	return apperrors.Conflict("reservation already completed")
}

// CancelledState is terminal.
type CancelledState struct{}

func (s *CancelledState) Confirm(r *Reservation) error {
	return apperrors.Conflict("cannot confirm a cancelled reservation")
}

func (s *CancelledState) Cancel(r *Reservation) error {
	return apperrors.Conflict("reservation already cancelled")
}

func (s *CancelledState) Complete(r *Reservation) error {
	return apperrors.Conflict("cannot complete a cancelled reservation")
}

// GetReservationState returns the state object for a status.
func GetReservationState(status string) ReservationState {
	switch status {
	case constants.ReservationStatusConfirmed:
		return &ConfirmedState{}
	case constants.ReservationStatusCompleted:
		return &CompletedState{}
	case constants.ReservationStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}

// Transition moves r to the target status through the state machine.
// No target ever re-enters pending.
func Transition(r *Reservation, target string) error {
	state := GetReservationState(r.Status)
	switch target {
	case constants.ReservationStatusConfirmed:
		return state.Confirm(r)
	case constants.ReservationStatusCancelled:
		return state.Cancel(r)
	case constants.ReservationStatusCompleted:
		return state.Complete(r)
	case constants.ReservationStatusPending:
		if r.Status == constants.ReservationStatusPending {
			return nil
		}
		return apperrors.Conflict("reservation cannot return to pending")
	default:
		return apperrors.Validation("unknown reservation status: " + target)
	}
}
