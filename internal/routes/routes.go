package routes

import (
	"github.com/gin-contrib/cors"
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"carrental/internal/controllers"
	"carrental/internal/store"
)

// SetupRouter wires middleware and every controller onto a fresh engine.
func SetupRouter(db *gorm.DB, uploadDir string) *gin.Engine {
	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	carCtl := controllers.NewCarController(store.NewCars(db), uploadDir)
	userCtl := controllers.NewUserController(store.NewUsers(db))
	rentalCtl := controllers.NewRentalController(store.NewRentals(db), store.NewCars(db))

	CarRoutes(r, carCtl)
	UserRoutes(r, userCtl)
	RentalRoutes(r, rentalCtl)
	WebRoutes(r, uploadDir)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
