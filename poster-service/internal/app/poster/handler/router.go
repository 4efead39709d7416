package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gastroposter/pkg/logger"
	"gastroposter/pkg/metrics"
)

const serviceName = "poster-service"

func SetupRoutes(productHandler *ProductHandler, posterHandler *PosterHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// Фронтенд постеров ходит с любого origin
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Accept", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Disposition", "Location", logger.RequestIDHeader},
		MaxAge:          300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static(UploadURLPrefix, productHandler.uploadDir)

	api := router.Group("/api")
	{
		products := api.Group("/products")
		products.GET("", productHandler.GetAllProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", productHandler.CreateProduct)
		products.POST("/upload", productHandler.UploadProduct)

		poster := api.Group("/poster")
		poster.POST("", posterHandler.CreatePoster)
		poster.POST("/preview", posterHandler.PreviewPoster)
	}

	return router
}
