package routes

import (
	"net/http"
	"time"

	"turfbook/handlers"
	"turfbook/middleware"
	"turfbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the wired handlers for route registration.
type HandlerBundle struct {
	Availability   *handlers.AvailabilityHandler
	Booking        *handlers.BookingHandler
	BookingRecords *handlers.BookingRecordHandler
	Auth           *handlers.AuthHandler
}

// RegisterRoutes wires up all endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterAvailabilityRoutes registers the public slot grid endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/:date", hb.Availability.GetDayAvailability)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.FirebaseAuthMiddleware())
		bookingGroup.POST("/session", hb.Booking.StartSession)              // Phase 1: Start session
		bookingGroup.PUT("/session/:sessionID/tap", hb.Booking.TapSlot)     // Phase 2: Build the range
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.CancelSession)
		bookingGroup.POST("/confirm", hb.Booking.ConfirmBooking)            // Phase 3: Commit
	}

	recordGroup := r.Group("/api/bookings")
	{
		recordGroup.Use(middleware.FirebaseAuthMiddleware())
		recordGroup.GET("", hb.BookingRecords.GetMyBookings)
		recordGroup.GET("/:id", hb.BookingRecords.GetBookingByID)
	}
}

// RegisterAuthRoutes registers identity endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/password-reset", hb.Auth.PasswordReset)

		api.Use(middleware.FirebaseAuthMiddleware())
		api.GET("/me", hb.Auth.CurrentUser)
	}
}
