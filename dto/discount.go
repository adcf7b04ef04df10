package dto

import "hotelbooking/services"

type CreateDiscountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	FromDate    string `json:"fromDate" binding:"required,isodate"`
	ToDate      string `json:"toDate" binding:"required,isodate"`
	Discount    int    `json:"discount" binding:"required,min=1,max=100"`
	Status      *int   `json:"status" binding:"omitempty,oneof=0 1"`
}

func (r CreateDiscountRequest) ToInput() (services.DiscountInput, error) {
	from, err := parseDate(r.FromDate)
	if err != nil {
		return services.DiscountInput{}, err
	}
	to, err := parseDate(r.ToDate)
	if err != nil {
		return services.DiscountInput{}, err
	}
	return services.DiscountInput{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		FromDate:    from,
		ToDate:      to,
		Percent:     r.Discount,
		Status:      r.Status,
	}, nil
}
