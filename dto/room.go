package dto

import (
	"github.com/shopspring/decimal"

	apperrors "hotelbooking/errors"
	"hotelbooking/services"
)

type CreateRoomRequest struct {
	Number        string          `json:"number" binding:"required"`
	Type          string          `json:"type" binding:"required,roomtype"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	MaxOccupancy  int             `json:"maxOccupancy" binding:"required,min=1"`
	IsAvailable   *bool           `json:"isAvailable"`
	RatingAverage float64         `json:"ratingAverage" binding:"min=0,max=5"`
	Amenities     []string        `json:"amenities"`
	ImageURL      *string         `json:"imageUrl"`
}

func (r CreateRoomRequest) ToInput() services.RoomInput {
	return services.RoomInput{
		Number:        r.Number,
		Type:          r.Type,
		PricePerNight: r.PricePerNight,
		MaxOccupancy:  r.MaxOccupancy,
		IsAvailable:   r.IsAvailable,
		RatingAverage: r.RatingAverage,
		Amenities:     r.Amenities,
		ImageURL:      r.ImageURL,
	}
}

// UpdateRoomRequest is a partial update; omitted fields stay unchanged.
type UpdateRoomRequest struct {
	Number        *string          `json:"number"`
	Type          *string          `json:"type" binding:"omitempty,roomtype"`
	PricePerNight *decimal.Decimal `json:"pricePerNight"`
	MaxOccupancy  *int             `json:"maxOccupancy" binding:"omitempty,min=1"`
	IsAvailable   *bool            `json:"isAvailable"`
	RatingAverage *float64         `json:"ratingAverage" binding:"omitempty,min=0,max=5"`
	Amenities     []string         `json:"amenities"`
	ImageURL      *string          `json:"imageUrl"`
}

func (r UpdateRoomRequest) ToPatch() services.RoomPatch {
	return services.RoomPatch{
		Number:        r.Number,
		Type:          r.Type,
		PricePerNight: r.PricePerNight,
		MaxOccupancy:  r.MaxOccupancy,
		IsAvailable:   r.IsAvailable,
		RatingAverage: r.RatingAverage,
		Amenities:     r.Amenities,
		ImageURL:      r.ImageURL,
	}
}

// RoomSearchQuery binds GET /rooms. Amenities are comma separated.
type RoomSearchQuery struct {
	Text          string `form:"text"`
	Type          string `form:"type" binding:"omitempty,roomtype"`
	MinPrice      string `form:"minPrice"`
	MaxPrice      string `form:"maxPrice"`
	Amenities     string `form:"amenities"`
	MinOccupancy  *int   `form:"minOccupancy"`
	MaxOccupancy  *int   `form:"maxOccupancy"`
	AvailableOnly bool   `form:"availableOnly"`
	CheckIn       string `form:"checkIn" binding:"omitempty,isodate"`
	CheckOut      string `form:"checkOut" binding:"omitempty,isodate"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder"`
	PageQuery
}

func (q RoomSearchQuery) ToParams() (services.SearchParams, error) {
	params := services.SearchParams{
		Text:          q.Text,
		Type:          q.Type,
		Amenities:     splitList(q.Amenities),
		MinOccupancy:  q.MinOccupancy,
		MaxOccupancy:  q.MaxOccupancy,
		AvailableOnly: q.AvailableOnly,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Page:          q.Page,
		PageSize:      q.PageSize,
	}
	var err error
	if params.MinPrice, err = parseDecimal(q.MinPrice, "minPrice"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = parseDecimal(q.MaxPrice, "maxPrice"); err != nil {
		return params, err
	}
	if params.CheckIn, err = parseOptionalDate(q.CheckIn); err != nil {
		return params, err
	}
	if params.CheckOut, err = parseOptionalDate(q.CheckOut); err != nil {
		return params, err
	}
	return params, nil
}

func parseDecimal(s, field string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, field+" must be a number", err)
	}
	return &d, nil
}
