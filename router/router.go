// router/router.go

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/subexpiry/controller"
	"github.com/dev-mohitbeniwal/subexpiry/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimit float64,
	rateBurst int,
	metricsHandler http.Handler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	controllers.Expiration.RegisterRoot(router)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := router.Group("/api")
	api.Use(middleware.RateLimiter(rateLimit, rateBurst))
	controllers.Expiration.RegisterRoutes(api)
	if controllers.Audit != nil {
		controllers.Audit.RegisterRoutes(api)
	}

	return router
}
