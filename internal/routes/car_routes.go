package routes

import (
	"carrental/internal/controllers"
	"carrental/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CarRoutes(r *gin.Engine, ctl *controllers.CarController) {
	cars := r.Group("/api/cars")
	{
		// Public reads
		cars.GET("", ctl.GetAllCars)
		cars.GET("/available", ctl.GetAvailableCars)
		cars.GET("/search", ctl.SearchCars)
		cars.GET("/category/:category", ctl.GetCarsByCategory)
		cars.GET("/:id", ctl.GetCarByID)

		// Fleet management, admin only
		admin := cars.Group("")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.POST("", ctl.CreateCar)
			admin.PUT("/:id", ctl.UpdateCar)
			admin.PATCH("/:id/availability", ctl.UpdateCarAvailability)
			admin.DELETE("/:id", ctl.DeleteCar)
		}
	}
}
