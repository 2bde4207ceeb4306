package routes

import (
	"github.com/easayliu/media-gallery/internal/application/container"
	"github.com/easayliu/media-gallery/internal/application/contracts"
	"github.com/easayliu/media-gallery/internal/interfaces/http/handlers"
	"github.com/easayliu/media-gallery/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/easayliu/media-gallery/docs"
)

// SetupRoutes 设置路由
func SetupRoutes(c *container.ServiceContainer) *gin.Engine {
	router := newRouter()
	router.Use(middleware.ContainerMiddleware(c))
	registerAPI(router, c.GetMediaService())
	return router
}

func newRouter() *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}

func registerAPI(router *gin.Engine, mediaService contracts.MediaService) {
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// API 路由组
	api := router.Group("/api/v1")
	api.Use(middleware.ErrorHandlerMiddleware())
	{
		// 健康检查
		api.GET("/health", handlers.HealthCheck)

		api.GET("/types", mediaHandler.GetTypes)
		api.GET("/images", mediaHandler.GetImages)

		cache := api.Group("/cache")
		{
			cache.POST("/invalidate", mediaHandler.InvalidateCache)
			cache.GET("/stats", mediaHandler.GetCacheStats)
		}
	}
}
