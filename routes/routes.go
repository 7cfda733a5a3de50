package routes

import (
	"net/http"
	"time"

	memberRepo "fitbook/database/repository/member"
	"fitbook/handlers"
	"fitbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the wired handlers and the repositories the
// authentication middleware needs.
type HandlerBundle struct {
	MemberRepo memberRepo.MemberRepository

	FacilityHandler *handlers.FacilityHandler
	BookingHandler  *handlers.BookingHandler
	MemberHandler   *handlers.MemberHandler
}

// RegisterMemberRoutes registers member registration and sign-in endpoints.
func RegisterMemberRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/members")
	{
		api.POST("/register", hb.MemberHandler.RegisterHandler)
		api.POST("/sign-in", hb.MemberHandler.SignInHandler)
	}
}

// RegisterFacilityRoutes registers the public facility catalogue endpoints.
// Availability is public so members can browse before signing in.
func RegisterFacilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/facilities")
	{
		api.GET("", hb.FacilityHandler.ListFacilitiesHandler)
		api.GET("/:id", hb.FacilityHandler.GetFacilityHandler)
		api.GET("/:id/availability", hb.FacilityHandler.GetFacilityAvailabilityHandler)
	}
}

// RegisterBookingRoutes registers the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMemberMiddleware(hb.MemberRepo))

		// Phase 1: start session. Phase 2: pick a date. Phase 3: confirm window.
		bookingGroup.POST("/session", hb.BookingHandler.StartSessionHandler)
		bookingGroup.PUT("/session/:sessionID/date", hb.BookingHandler.SelectDateHandler)
		bookingGroup.POST("/session/:sessionID/confirm", hb.BookingHandler.ConfirmHandler)
		bookingGroup.DELETE("/session/:sessionID", hb.BookingHandler.CancelSessionHandler)

		bookingGroup.GET("/reservations", hb.BookingHandler.ListMyReservationsHandler)
		bookingGroup.DELETE("/reservations/:id", hb.BookingHandler.CancelReservationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Fitbook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterMemberRoutes(r, hb)
	RegisterFacilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
