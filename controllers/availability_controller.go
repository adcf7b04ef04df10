package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

type AvailabilityController struct {
	availability services.AvailabilityReader
	log          logger.Logger
}

func NewAvailabilityController(availability services.AvailabilityReader, log logger.Logger) AvailabilityController {
	return AvailabilityController{availability: availability, log: log}
}

func (ac AvailabilityController) CheckAvailability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	checkIn, checkOut, err := q.Dates()
	if err != nil {
		fail(c, ac.log, err)
		return
	}
	tenantID, err := services.ResolveTenant(c.Request.Context())
	if err != nil {
		fail(c, ac.log, err)
		return
	}

	rooms, err := ac.availability.CheckAvailability(c.Request.Context(), tenantID, checkIn, checkOut, q.RoomType)
	if err != nil {
		fail(c, ac.log, err)
		return
	}
	response.Success(c, rooms)
}

func (ac AvailabilityController) GetCalendar(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	start, end, err := q.Dates()
	if err != nil {
		fail(c, ac.log, err)
		return
	}
	tenantID, err := services.ResolveTenant(c.Request.Context())
	if err != nil {
		fail(c, ac.log, err)
		return
	}

	days, err := ac.availability.Calendar(c.Request.Context(), tenantID, start, end, q.RoomID)
	if err != nil {
		fail(c, ac.log, err)
		return
	}
	response.Success(c, days)
}
