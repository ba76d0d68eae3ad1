package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"groombook/admin"
	"groombook/auth"
	"groombook/booking"
	"groombook/middleware"
	"groombook/profile"
	"groombook/ratelim"
	"groombook/settings"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/petpic/*filepath", http.Dir("static/petpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", auth.LogoutUser)
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(auth.RefreshToken))
}

func AddScheduleRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/services", rateLimiter.Limit(settings.GetServices))
	router.GET("/api/schedule/:date", rateLimiter.Limit(settings.GetDaySchedule))
	router.GET("/api/availability/:serviceid/:date", rateLimiter.Limit(booking.GetAvailability))
}

func AddBookingRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/bookings", rateLimiter.Limit(middleware.Authenticate(booking.CreateBooking)))
	router.GET("/api/bookings/:id/receipt", rateLimiter.Limit(booking.PrintReceipt))
	router.POST("/api/bookings/:id/photo", rateLimiter.Limit(middleware.Authenticate(booking.UploadPetPhoto)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.GET("/api/profile/bookings", middleware.Authenticate(booking.GetMyBookings))
	router.GET("/api/profile/loyalty", middleware.Authenticate(profile.GetLoyalty))
}

func AddAdminRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/admin/bookings", middleware.RequireAdmin(admin.GetBookingHistory))
	router.GET("/api/admin/bookings/day/:date", middleware.RequireAdmin(admin.GetDayBookings))
	router.GET("/api/admin/bookings/month/:month", middleware.RequireAdmin(admin.GetMonthBookings))
	router.GET("/api/admin/schedule/:date", middleware.RequireAdmin(settings.GetDayConfig))
	router.PUT("/api/admin/schedule/:date", rateLimiter.Limit(middleware.RequireAdmin(settings.UpdateDayConfig)))
	router.GET("/api/admin/services", middleware.RequireAdmin(settings.GetServicesConfig))
	router.PUT("/api/admin/services", rateLimiter.Limit(middleware.RequireAdmin(settings.UpdateServicesConfig)))
}
