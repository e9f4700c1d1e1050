package routes

import (
	"carrental/internal/controllers"
	"carrental/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RentalRoutes(r *gin.Engine, ctl *controllers.RentalController) {
	rentals := r.Group("/api/rentals")
	{
		// Public availability probe
		rentals.GET("/check-availability/:carId", ctl.CheckAvailability)

		// Any authenticated user
		rentals.POST("", middleware.RequireAuth(), ctl.CreateRental)

		// Owner or admin; GetRentalByID resolves ownership from the row itself
		rentals.GET("/user/:userId", middleware.RequireAuth(), middleware.RequireOwnerOrAdmin("userId"), ctl.GetRentalsByUserID)
		rentals.GET("/:id", middleware.RequireAuth(), ctl.GetRentalByID)

		admin := rentals.Group("")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("", ctl.GetAllRentals)
			admin.GET("/stats", ctl.GetRentalStats)
			admin.GET("/status/:status", ctl.GetRentalsByStatus)
			admin.PATCH("/:id/status", ctl.UpdateRentalStatus)
			admin.PATCH("/:id/payment", ctl.UpdatePaymentStatus)
			admin.DELETE("/:id", ctl.DeleteRental)
		}
	}
}
