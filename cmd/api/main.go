package main

import (
	"context"
	"log"
	"net/http"

	"github.com/projtrack-app/projtrack-backend/config"
	apimiddleware "github.com/projtrack-app/projtrack-backend/internal/api/http/middleware"
	authrepo "github.com/projtrack-app/projtrack-backend/internal/auth/repository"
	"github.com/projtrack-app/projtrack-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenMongo(ctx, bootstrap.MongoOptions{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() {
		_ = db.Client().Disconnect(ctx)
	}()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	if err := authrepo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatalf("indexes: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "projtrack-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.App.AllowedOrigins,
		Mongo:          db,
		Redis:          rdb,
		SessionTTL:     cfg.Session.TTL,
		SessionCookie:  cfg.Session.CookieName,
	})

	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		// Method override must wrap the engine so it runs before route matching.
		Handler: apimiddleware.MethodOverride(router),
	}

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(srv.ListenAndServe())
}
