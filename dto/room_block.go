package dto

import "hotelbooking/services"

type CreateBlockRequest struct {
	RoomID    string  `json:"roomId" binding:"required"`
	StartDate string  `json:"startDate" binding:"required,isodate"`
	EndDate   string  `json:"endDate" binding:"required,isodate"`
	Type      string  `json:"type" binding:"required,blocktype"`
	Reason    *string `json:"reason"`
	IsActive  *bool   `json:"isActive"`
}

func (r CreateBlockRequest) ToInput() (services.BlockInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return services.BlockInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return services.BlockInput{}, err
	}
	return services.BlockInput{
		RoomID:    r.RoomID,
		StartDate: start,
		EndDate:   end,
		Type:      r.Type,
		Reason:    r.Reason,
		IsActive:  r.IsActive,
	}, nil
}

type UpdateBlockRequest struct {
	StartDate string  `json:"startDate" binding:"omitempty,isodate"`
	EndDate   string  `json:"endDate" binding:"omitempty,isodate"`
	Type      *string `json:"type" binding:"omitempty,blocktype"`
	Reason    *string `json:"reason"`
	IsActive  *bool   `json:"isActive"`
}

func (r UpdateBlockRequest) ToPatch() (services.BlockPatch, error) {
	patch := services.BlockPatch{Type: r.Type, Reason: r.Reason, IsActive: r.IsActive}
	var err error
	if patch.StartDate, err = parseOptionalDate(r.StartDate); err != nil {
		return patch, err
	}
	if patch.EndDate, err = parseOptionalDate(r.EndDate); err != nil {
		return patch, err
	}
	return patch, nil
}
