package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

type PaymentController struct {
	payments *services.PaymentService
	log      logger.Logger
}

func NewPaymentController(payments *services.PaymentService, log logger.Logger) PaymentController {
	return PaymentController{payments: payments, log: log}
}

func (pc PaymentController) CreateIntent(c *gin.Context) {
	payment, err := pc.payments.CreateIntent(c.Request.Context(), c.Param("reservationId"), currentIdentity(c))
	if err != nil {
		fail(c, pc.log, err)
		return
	}
	response.Success(c, payment)
}

// Settle is the payment-success signal from the payment provider.
func (pc PaymentController) Settle(c *gin.Context) {
	payment, err := pc.payments.Settle(c.Request.Context(), c.Param("reservationId"))
	if err != nil {
		fail(c, pc.log, err)
		return
	}
	response.Success(c, payment)
}
