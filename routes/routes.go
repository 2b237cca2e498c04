package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	r.POST("/signup", handlers.Signup)
	r.POST("/login", handlers.Login)
	r.POST("/check-username", handlers.CheckUsername)
	r.POST("/forgot-password", handlers.ForgotPassword)
	r.POST("/verify-reset-code", handlers.VerifyResetCode)
	r.POST("/reset-password", handlers.ResetPassword)

	r.GET("/menu", handlers.GetMenu)
	r.GET("/accompaniments", handlers.GetAccompaniments)

	// Reservations are open to walk-in customers without an account.
	r.POST("/reservation", handlers.CreateReservation)
	r.GET("/reservation/:id", handlers.GetReservation)
	r.PATCH("/reservation/:id/cancel", handlers.CancelReservation)

	// ── Authenticated customer routes ──────────────────────────────
	auth := r.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.POST("/order", handlers.PlaceOrder)
		auth.GET("/user-orders/:userId", handlers.GetUserOrders)
		auth.GET("/user-finished-orders/:userId", handlers.GetUserFinishedOrders)
		auth.GET("/user/order/:orderId", handlers.GetOrder)
		auth.DELETE("/user/cancel-order/:orderId", handlers.CancelOrder)
		auth.POST("/user/mark-finished", handlers.MarkFinished)
		auth.GET("/user/reservations/:userId", handlers.GetUserReservations)
		auth.GET("/users/riders", handlers.ListRiders)
	}

	// ── Rider routes ───────────────────────────────────────────────
	rider := r.Group("/rider")
	rider.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRider, models.RoleAdmin))
	{
		rider.GET("/current-orders/:riderId", handlers.RiderCurrentOrders)
		rider.GET("/finished-orders/:riderId", handlers.RiderFinishedOrders)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/create-user", handlers.AdminCreateUser)
		admin.GET("/riders", handlers.ListRiders)

		admin.POST("/create-menu-item", handlers.CreateMenuItem)
		admin.PUT("/update-menu-item/:id", handlers.UpdateMenuItem)
		admin.DELETE("/delete-menu-item/:id", handlers.DeleteMenuItem)
		admin.POST("/update-price", handlers.UpdatePrice)
		admin.POST("/create-accompaniment", handlers.CreateAccompaniment)
		admin.POST("/update-accompaniment", handlers.UpdateAccompaniment)
		admin.DELETE("/delete-accompaniment/:id", handlers.DeleteAccompaniment)

		admin.GET("/orders", handlers.AdminGetOrders)
		admin.POST("/order-status", handlers.UpdateOrderStatus)
		admin.POST("/assign-rider", handlers.AssignRider)
		admin.DELETE("/cancel-order/:orderId", handlers.CancelOrder)
		admin.GET("/finished-orders", handlers.AdminGetFinishedOrders)
		admin.GET("/rider-finished-deliveries", handlers.AdminGetRiderFinishedDeliveries)
		admin.DELETE("/finished-orders/:orderId", handlers.DeleteFinishedOrder)

		admin.GET("/reservations", handlers.AdminGetReservations)
		admin.POST("/reservation-status", handlers.UpdateReservationStatus)

		// One-time data migration, kept behind the admin guard.
		admin.POST("/seed-menu", handlers.SeedMenu)
		admin.POST("/seed-accompaniments", handlers.SeedAccompaniments)
	}
}
