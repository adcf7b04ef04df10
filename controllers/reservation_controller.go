package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

type ReservationController struct {
	reservations *services.ReservationService
	log          logger.Logger
}

func NewReservationController(reservations *services.ReservationService, log logger.Logger) ReservationController {
	return ReservationController{reservations: reservations, log: log}
}

func (rc ReservationController) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		fail(c, rc.log, err)
		return
	}

	reservation, err := rc.reservations.Create(c.Request.Context(), currentIdentity(c), in)
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Created(c, reservation)
}

func (rc ReservationController) GetReservations(c *gin.Context) {
	var q dto.ReservationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	filter := q.ToFilter()

	reservations, total, err := rc.reservations.List(c.Request.Context(), currentIdentity(c), filter)
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.SuccessWithPagination(c, reservations, filter.Page, filter.PageSize, total, dto.TotalPages(total, filter.PageSize))
}

func (rc ReservationController) GetReservationDetail(c *gin.Context) {
	reservation, err := rc.reservations.FindOne(c.Request.Context(), c.Param("id"), currentIdentity(c))
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, reservation)
}

func (rc ReservationController) UpdateReservation(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	reservation, err := rc.reservations.Update(c.Request.Context(), c.Param("id"), req.ToPatch(), currentIdentity(c))
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, reservation)
}

func (rc ReservationController) CancelReservation(c *gin.Context) {
	reservation, err := rc.reservations.Cancel(c.Request.Context(), c.Param("id"), currentIdentity(c))
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, reservation)
}

func (rc ReservationController) CheckIn(c *gin.Context) {
	reservation, err := rc.reservations.CheckIn(c.Request.Context(), c.Param("id"), currentIdentity(c))
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, reservation)
}

func (rc ReservationController) CheckOut(c *gin.Context) {
	reservation, err := rc.reservations.CheckOut(c.Request.Context(), c.Param("id"), currentIdentity(c))
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, reservation)
}
