package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gpsinspection/station-backend-go/internal/config"
	"github.com/gpsinspection/station-backend-go/internal/handler"
	"github.com/gpsinspection/station-backend-go/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Station  *handler.StationHandler
	Search   *handler.SearchHandler
	Location *handler.LocationHandler
	Admin    *handler.AdminHandler
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, h Handlers, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Station Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	{
		stations := api.Group("/stations")
		{
			stations.POST("", h.Station.CreateStation)
			stations.GET("", h.Station.ListStations)
			stations.GET("/nearby", h.Location.Nearby)
			stations.GET("/nearby/detail", h.Location.NearbyDetail)
			stations.GET("/alternative-locations", h.Location.AlternativeLocations)
			stations.POST("/check-duplicate", h.Location.CheckDuplicate)
			stations.POST("/validate-location", h.Location.ValidateLocation)
			stations.GET("/:id", h.Station.GetStation)
			stations.PUT("/:id", h.Station.UpdateStation)
			stations.DELETE("/:id", h.Station.DeleteStation)
		}

		search := api.Group("/search")
		{
			search.GET("", h.Search.Search)
			search.GET("/suggestions", h.Search.Suggestions)
			search.GET("/popular", h.Search.Popular)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.GET("/cache/stats", h.Admin.CacheStats)
		}
	}

	return r
}
