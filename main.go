package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "concierge/internal/config"
	router "concierge/internal/http"
	"concierge/internal/http/handlers"
	"concierge/internal/repositories"
	"concierge/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: failed to load .env: %v", err)
	}

	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	var db *sql.DB
	if conn, err := intconfig.ConnectDB(env); err != nil {
		log.Printf("lodging catalog disabled: %v", err)
	} else {
		db = conn
	}
	defer intconfig.CloseDB()

	concierge := handlers.ConciergeHandler{
		Normalizer: services.Normalizer{},
		Search: services.TavilyClient{
			APIKey:               env.TavilyAPIKey,
			Endpoint:             env.TavilyEndpoint,
			Timeout:              env.SearchTimeout,
			AllowOfflineFallback: env.AllowOfflineFallback,
			OfflineFile:          env.OfflineResultsFile,
		},
		Filter: services.RelevanceFilter{Aliases: services.DefaultAliases},
		Lodging: func(requestID string) services.LodgingCatalog {
			return repositories.LodgingRepository{DB: db, RequestID: requestID}
		},
		LodgingLimit: services.DefaultLodgingLimit,
	}
	if env.TavilyAPIKey == "" {
		log.Printf("TAVILY_API_KEY not set: context retrieval returns empty results (offline fallback=%t)", env.AllowOfflineFallback)
	}

	r := router.NewRouter(env, concierge)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
