package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ainoggo/docs"
	"ainoggo/internal/handler"
	"ainoggo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	documentH *handler.DocumentHandler,
	queryH *handler.QueryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger("/healthz"))
	r.Use(middleware.CORS(corsOrigins))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	document := v1.Group("/document")
	document.POST("", documentH.Submit)
	document.GET("", documentH.Get)
	document.DELETE("", documentH.Reset)
	document.GET("/export", documentH.Export)

	query := v1.Group("/query")
	query.POST("", queryH.Submit)
	query.GET("", queryH.Get)
	query.DELETE("", queryH.Reset)
	query.GET("/case-types", queryH.CaseTypes)
	query.GET("/export", queryH.Export)

	return r
}
