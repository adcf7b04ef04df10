package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

type RoomController struct {
	catalog *services.CatalogService
	reader  services.CatalogReader
	log     logger.Logger
}

// NewRoomController serves reads through reader (usually the cached
// catalog) and writes through catalog.
func NewRoomController(catalog *services.CatalogService, reader services.CatalogReader, log logger.Logger) RoomController {
	if reader == nil {
		reader = catalog
	}
	return RoomController{catalog: catalog, reader: reader, log: log}
}

func (rc RoomController) SearchRooms(c *gin.Context) {
	var q dto.RoomSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	params, err := q.ToParams()
	if err != nil {
		fail(c, rc.log, err)
		return
	}

	result, err := rc.reader.Search(c.Request.Context(), params)
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, result)
}

func (rc RoomController) GetRoomDetail(c *gin.Context) {
	room, err := rc.reader.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, room)
}

func (rc RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	room, err := rc.catalog.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Created(c, room)
}

func (rc RoomController) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	room, err := rc.catalog.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, room)
}

func (rc RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.catalog.Remove(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, rc.log, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
