package routes

import (
	"carrental/internal/controllers"
	"carrental/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine, ctl *controllers.UserController) {
	users := r.Group("/api/users")
	{
		users.POST("/register", ctl.Register)
		users.POST("/login", ctl.Login)
		users.POST("/admin/login", ctl.AdminLogin)

		users.GET("", middleware.RequireAuth(), middleware.RequireAdmin(), ctl.GetAllUsers)

		owner := users.Group("")
		owner.Use(middleware.RequireAuth(), middleware.RequireOwnerOrAdmin("id"))
		{
			owner.GET("/:id", ctl.GetUserByID)
			owner.PUT("/:id", ctl.UpdateUser)
			owner.POST("/:id/change-password", ctl.ChangePassword)
		}
	}
}
