package dto

import "hotelbooking/services"

type CreateReservationRequest struct {
	RoomID     string `json:"roomId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required,isodate"`
	CheckOut   string `json:"checkOut" binding:"required,isodate"`
	GuestNotes string `json:"guestNotes" binding:"max=2000"`
	CouponCode string `json:"couponCode"`
	UserID     string `json:"userId"`
}

func (r CreateReservationRequest) ToInput() (services.ReservationInput, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return services.ReservationInput{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return services.ReservationInput{}, err
	}
	return services.ReservationInput{
		RoomID:     r.RoomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestNotes: r.GuestNotes,
		CouponCode: r.CouponCode,
		UserID:     r.UserID,
	}, nil
}

type UpdateReservationRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	GuestNotes *string `json:"guestNotes" binding:"omitempty,max=2000"`
	Version    *int    `json:"version"`
}

func (r UpdateReservationRequest) ToPatch() services.ReservationPatch {
	return services.ReservationPatch{
		Status:     r.Status,
		GuestNotes: r.GuestNotes,
		Version:    r.Version,
	}
}

type ReservationListQuery struct {
	RoomID string `form:"roomId"`
	UserID string `form:"userId"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PageQuery
}

func (q ReservationListQuery) ToFilter() services.ReservationListFilter {
	page, pageSize := q.Normalize()
	return services.ReservationListFilter{
		RoomID:   q.RoomID,
		UserID:   q.UserID,
		Status:   q.Status,
		Page:     page,
		PageSize: pageSize,
	}
}
