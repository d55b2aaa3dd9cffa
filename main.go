package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DirectChat/pkg/cache"
	"DirectChat/pkg/config"
	"DirectChat/pkg/database"
	"DirectChat/pkg/realtime"
	"DirectChat/pkg/services"
	"DirectChat/pkg/store"
	tokenstore "DirectChat/pkg/token"
	"DirectChat/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	historyCache := cache.New(cfg.HistoryCacheMaxItems, time.Minute)
	defer historyCache.Close()

	messages := store.NewMessageStore(db, historyCache, time.Duration(cfg.HistoryCacheTTLSeconds)*time.Second)
	hub := realtime.NewHub(messages)

	media, err := services.NewMediaStorage(cfg.UploadDir, cfg.PublicBaseURL, int64(cfg.MaxUploadMB)<<20)
	if err != nil {
		log.Fatalf("failed to init media storage: %v", err)
	}

	r := gin.Default()
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Accounts:  store.NewAccountStore(db),
		Messages:  messages,
		Hub:       hub,
		Media:     media,
		Revoked:   tokenstore.NewRevocationList(),
		JWTSecret: cfg.JWTSecret,
		PublicDir: cfg.PublicDir,
		UploadDir: cfg.UploadDir,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("[server] listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[server] http shutdown: %v", err)
	}
	// hijacked websocket connections are not covered by srv.Shutdown
	if err := hub.Shutdown(ctx); err != nil {
		log.Printf("[server] hub shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
