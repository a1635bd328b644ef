// mocklmsd is the local development backend for the edlane CLI: it serves
// the same wire contract as the production LMS API so the client can be
// built and exercised offline.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/edlane/edlane-lms/internal/config"
	"github.com/edlane/edlane-lms/internal/server"
)

func main() {
	cfg := config.ServerFromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := server.OpenDB(ctx, server.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := server.SeedDemo(ctx, dbh); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	store := server.NewStore(dbh)
	authSvc := server.NewAuthService(cfg.HMACSecret)

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})(server.NewRouter(dbh, store, authSvc))

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
