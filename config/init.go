package config

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"

	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/notification"
	"hotelbooking/validator"
)

// InitApp builds the gin engine, the websocket hub and the cron scheduler.
func InitApp() (*gin.Engine, *melody.Melody, *cron.Cron) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.TenantHeader, middleware.RequestIDHeader)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)
	validator.RegisterGinValidations()

	m := melody.New()
	c := cron.New()

	return router, m, c
}

// InitWebSocket mounts /ws. Each session is tagged with its tenant so
// notifications stay inside it.
func InitWebSocket(router *gin.Engine, m *melody.Melody, jwtSecret string) {
	router.GET("/ws", middleware.OptionalAuth(jwtSecret), middleware.TenantMiddleware(), func(c *gin.Context) {
		tenantID, err := services.ResolveTenant(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}
		keys := map[string]interface{}{notification.TenantKey: tenantID}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			log.Printf("websocket upgrade failed: %v", err)
		}
	})
	log.Println("WebSocket initialized successfully")
}
