package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"xostore-backend/controllers"
	"xostore-backend/middleware"
	"xostore-backend/services"
)

// Setup mengonfigurasi dan mengembalikan Gin engine.
func Setup(ctrl *controllers.Controller, auth *services.AuthService, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		// Rute publik
		api.GET("/health", ctrl.HealthCheck)
		api.POST("/login", ctrl.Login)
		api.POST("/register", ctrl.Register)

		authed := api.Group("")
		authed.Use(middleware.Auth(auth))
		{
			authed.GET("/me", ctrl.Me)

			// Produk: semua peran boleh membaca, hanya admin memutasi
			authed.GET("/products", ctrl.GetProducts)
			authed.GET("/products/:id", ctrl.GetProduct)
			authed.POST("/products", middleware.Require(services.ActionManageProducts), ctrl.CreateProduct)
			authed.PUT("/products/:id", middleware.Require(services.ActionManageProducts), ctrl.UpdateProduct)
			authed.DELETE("/products/:id", middleware.Require(services.ActionManageProducts), ctrl.DeleteProduct)

			// Penjualan: sales_staff boleh mencatat, amendemen hanya admin
			authed.GET("/sales", ctrl.GetSales)
			authed.POST("/sales", middleware.Require(services.ActionRecordSale), ctrl.RecordSale)
			authed.PUT("/sales/:id", middleware.Require(services.ActionManageSales), ctrl.UpdateSale)
			authed.DELETE("/sales/:id", middleware.Require(services.ActionManageSales), ctrl.DeleteSale)

			// Laporan
			authed.GET("/dashboard/stats", middleware.Require(services.ActionViewReports), ctrl.GetDashboardStats)
			authed.GET("/sales/summary", middleware.Require(services.ActionViewReports), ctrl.GetSalesSummary)
			authed.GET("/dashboard/insights", middleware.Require(services.ActionViewReports), ctrl.GetInsights)

			// Pengguna: hanya admin
			users := authed.Group("/users")
			users.Use(middleware.Require(services.ActionManageUsers))
			{
				users.GET("", ctrl.GetUsers)
				users.POST("", ctrl.CreateUser)
				users.PUT("/:id", ctrl.UpdateUser)
				users.DELETE("/:id", ctrl.DeleteUser)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
