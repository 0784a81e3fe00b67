package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gpsinspection/station-backend-go/internal/api"
	"github.com/gpsinspection/station-backend-go/internal/cache"
	"github.com/gpsinspection/station-backend-go/internal/config"
	"github.com/gpsinspection/station-backend-go/internal/database"
	"github.com/gpsinspection/station-backend-go/internal/handler"
	"github.com/gpsinspection/station-backend-go/internal/middleware"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
	"github.com/gpsinspection/station-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	stations := repository.NewStationRepository(db)
	logs := repository.NewSearchLogRepository(db)

	searchCache := cache.New[string, service.SearchPage](cfg.SearchCacheSize, cfg.SearchCacheTTL)
	dupCache := cache.New[string, models.DuplicateReport](cfg.LocationCacheSize, cfg.LocationCacheTTL)
	nearbyCache := cache.New[string, []models.StationWithDistance](cfg.LocationCacheSize, cfg.LocationCacheTTL)

	searchCache.StartJanitor(cfg.CacheCleanupPeriod)
	dupCache.StartJanitor(cfg.CacheCleanupPeriod)
	nearbyCache.StartJanitor(cfg.CacheCleanupPeriod)
	defer searchCache.Stop()
	defer dupCache.Stop()
	defer nearbyCache.Stop()

	stationService := service.NewStationService(stations)
	searchService := service.NewSearchService(stations, logs, searchCache, cfg)
	locationService := service.NewLocationService(stations, dupCache, nearbyCache, cfg)

	limiter := middleware.NewRateLimiter(120, time.Minute)
	defer limiter.Stop()

	router := api.SetupRouter(cfg, api.Handlers{
		Station:  handler.NewStationHandler(stationService),
		Search:   handler.NewSearchHandler(searchService),
		Location: handler.NewLocationHandler(locationService),
		Admin:    handler.NewAdminHandler(searchService, locationService),
	}, limiter)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
