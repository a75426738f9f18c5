package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	requireAuth := middleware.RequireAuth(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Reference data & availability (public reads)
		trains := api.Group("/trains")
		trains.GET("/search", h.SearchTrains)
		trains.GET("/:trainNumber/availability", h.GetAvailability)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.GET("/pnr/:pnr", h.GetBookingByPNR)
		bookings.POST("", requireAuth, h.CreateBooking)
		bookings.PUT("/pnr/:pnr/cancel", requireAuth, h.CancelBooking)
		bookings.GET("/pnr/:pnr/e-ticket", requireAuth, h.GetBookingETicket)

		// Users
		users := api.Group("/users", requireAuth)
		users.GET("", middleware.RequireRoles("admin"), h.ListUsers)
		users.GET("/:id", h.GetUserByID)
	}

	return r
}
