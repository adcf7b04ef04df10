package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

type DiscountController struct {
	discounts *services.DiscountService
	log       logger.Logger
}

func NewDiscountController(discounts *services.DiscountService, log logger.Logger) DiscountController {
	return DiscountController{discounts: discounts, log: log}
}

func (dc DiscountController) GetDiscounts(c *gin.Context) {
	discounts, err := dc.discounts.List(c.Request.Context())
	if err != nil {
		fail(c, dc.log, err)
		return
	}
	response.Success(c, discounts)
}

func (dc DiscountController) CreateDiscount(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		fail(c, dc.log, err)
		return
	}

	discount, err := dc.discounts.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, dc.log, err)
		return
	}
	response.Created(c, discount)
}
