package api

import (
	"net/http"
	"time"

	"go-restaurant-pos/internal/app"
	"go-restaurant-pos/internal/handlers"
	"go-restaurant-pos/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter registers every route of the POS API on a fresh gin engine.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	origins := a.Config.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"} // React dev server
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })

	orderHandler := handlers.NewOrderHandler(a.Orders, a.Config.Shop)
	reportHandler := handlers.NewReportHandler(a.Reports, a.Config.Shop)
	menuHandler := handlers.NewMenuHandler(a.Menu)

	api := r.Group("/api")
	{
		api.POST("/orders", orderHandler.Checkout)
		api.POST("/orders/import", orderHandler.Import)
		api.GET("/orders", orderHandler.GetOrderHistory)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.GET("/orders/:id/bill", orderHandler.DownloadBill)

		api.GET("/reports", reportHandler.GetSalesReport)
		api.GET("/reports/history", reportHandler.GetReportHistory)
		api.GET("/reports/history/:id/export", reportHandler.ExportReport)

		api.GET("/menu", menuHandler.GetMenu)
		api.POST("/menu", menuHandler.AddMenuItem)
		api.GET("/menu/:id", menuHandler.GetMenuItem)
		api.PUT("/menu/:id", menuHandler.UpdateMenuItem)
		api.DELETE("/menu/:id", menuHandler.DeleteMenuItem)
	}

	return r
}
