package routes

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/constants"
	"hotelbooking/controllers"
	middlewares "hotelbooking/middleware"
)

// Handlers groups the controllers the route table mounts.
type Handlers struct {
	Rooms        controllers.RoomController
	Availability controllers.AvailabilityController
	Blocks       controllers.RoomBlockController
	Reservations controllers.ReservationController
	Payments     controllers.PaymentController
	Discounts    controllers.DiscountController
}

func SetupRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	router.Use(middlewares.RequestID(), middlewares.ErrorHandler())

	v1 := router.Group("/api/v1")

	public := v1.Group("", middlewares.OptionalAuth(jwtSecret), middlewares.TenantMiddleware())
	public.GET("/rooms", h.Rooms.SearchRooms)
	public.GET("/rooms/:id", h.Rooms.GetRoomDetail)
	public.GET("/availability", h.Availability.CheckAvailability)
	public.GET("/availability/calendar", h.Availability.GetCalendar)

	authed := v1.Group("", middlewares.AuthMiddleware(jwtSecret), middlewares.TenantMiddleware())
	admin := authed.Group("", middlewares.RoleMiddleware(constants.RoleAdmin, constants.RoleSuperAdmin))

	admin.POST("/rooms", h.Rooms.CreateRoom)
	admin.PUT("/rooms/:id", h.Rooms.UpdateRoom)
	admin.DELETE("/rooms/:id", h.Rooms.DeleteRoom)

	admin.GET("/room-blocks", h.Blocks.GetBlocks)
	admin.GET("/room-blocks/:id", h.Blocks.GetBlockDetail)
	admin.POST("/room-blocks", h.Blocks.CreateBlock)
	admin.PUT("/room-blocks/:id", h.Blocks.UpdateBlock)
	admin.DELETE("/room-blocks/:id", h.Blocks.DeleteBlock)

	authed.POST("/reservations", h.Reservations.CreateReservation)
	authed.GET("/reservations", h.Reservations.GetReservations)
	authed.GET("/reservations/:id", h.Reservations.GetReservationDetail)
	authed.PUT("/reservations/:id", h.Reservations.UpdateReservation)
	authed.POST("/reservations/:id/cancel", h.Reservations.CancelReservation)
	authed.POST("/reservations/:id/check-in", h.Reservations.CheckIn)
	admin.POST("/reservations/:id/check-out", h.Reservations.CheckOut)

	authed.POST("/payments/:reservationId/intent", h.Payments.CreateIntent)
	admin.POST("/payments/:reservationId/settle", h.Payments.Settle)

	admin.GET("/discounts", h.Discounts.GetDiscounts)
	admin.POST("/discounts", h.Discounts.CreateDiscount)
}
