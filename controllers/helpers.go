package controllers

import (
	"github.com/gin-gonic/gin"

	apperrors "hotelbooking/errors"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
)

func currentIdentity(c *gin.Context) services.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}

// fail writes err as a response. Errors outside the domain taxonomy are
// logged with the request id and reported as 500.
func fail(c *gin.Context, log logger.Logger, err error) {
	if !apperrors.IsAppError(err) {
		log.Error("%s %s [%s]: %v", c.Request.Method, c.FullPath(), c.GetString("requestId"), err)
	}
	response.FromError(c, err)
}

func bindFailed(c *gin.Context, err error) {
	response.BadRequest(c, err.Error())
}
