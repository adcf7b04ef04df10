package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

type RoomBlockController struct {
	blocks *services.RoomBlockService
	log    logger.Logger
}

func NewRoomBlockController(blocks *services.RoomBlockService, log logger.Logger) RoomBlockController {
	return RoomBlockController{blocks: blocks, log: log}
}

func (bc RoomBlockController) GetBlocks(c *gin.Context) {
	blocks, err := bc.blocks.List(c.Request.Context(), c.Query("roomId"))
	if err != nil {
		fail(c, bc.log, err)
		return
	}
	response.Success(c, blocks)
}

func (bc RoomBlockController) GetBlockDetail(c *gin.Context) {
	block, err := bc.blocks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, bc.log, err)
		return
	}
	response.Success(c, block)
}

func (bc RoomBlockController) CreateBlock(c *gin.Context) {
	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		fail(c, bc.log, err)
		return
	}

	block, err := bc.blocks.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, bc.log, err)
		return
	}
	response.Created(c, block)
}

func (bc RoomBlockController) UpdateBlock(c *gin.Context) {
	var req dto.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		fail(c, bc.log, err)
		return
	}

	block, err := bc.blocks.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, bc.log, err)
		return
	}
	response.Success(c, block)
}

func (bc RoomBlockController) DeleteBlock(c *gin.Context) {
	if err := bc.blocks.Remove(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, bc.log, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}
