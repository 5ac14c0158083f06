package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcollection/internal/config"
	"github.com/mrlokans/bookcollection/internal/covers"
	"github.com/mrlokans/bookcollection/internal/database"
	http_controllers "github.com/mrlokans/bookcollection/internal/http"
	"github.com/mrlokans/bookcollection/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then give in-flight requests the configured
	// timeout to finish. SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background jobs before the server goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Collection v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	log.Printf("Database opened at %s", cfg.Database.Path)

	// Covers are optional: without a writable media dir the API still works,
	// only the cleanup job is skipped.
	coverStore, err := covers.NewStore(cfg.Media.Dir, cfg.Media.CoverFetchTimeout)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover store: %v", err)
	} else {
		log.Printf("Cover store initialized at %s", cfg.Media.Dir)
	}

	var cleanup *scheduler.CoverCleanupScheduler
	var cleanupCancel context.CancelFunc
	if cfg.CoverCleanup.Enabled && coverStore != nil {
		cleanup = scheduler.NewCoverCleanupScheduler(db, coverStore, cfg.CoverCleanup.Schedule)

		var cleanupCtx context.Context
		cleanupCtx, cleanupCancel = context.WithCancel(context.Background())
		if err := cleanup.Start(cleanupCtx); err != nil {
			log.Fatalf("Failed to start cover cleanup scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Store:      db,
		Database:   db,
		BookReader: db,
		MediaDir:   cfg.Media.Dir,
		Version:    version,
	}
	if coverStore != nil {
		routerCfg.Covers = coverStore
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanup != nil {
			cleanup.Stop()
			cleanupCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
