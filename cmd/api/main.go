package main

import (
	"context"
	"fmt"
	"time"

	"rfqengine/cmd/internal/config"
	"rfqengine/cmd/internal/domain/database"
	"rfqengine/cmd/internal/http/handler"
	authmiddleware "rfqengine/cmd/internal/http/middleware"
	"rfqengine/cmd/internal/infrastructure/lock"
	"rfqengine/cmd/internal/routes"
	"rfqengine/cmd/internal/service"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	ctx := context.Background()

	// Loads env vars depending on environment
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	validate := validator.New()
	validators.Register(validate)

	db, err := database.Init(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("unable to open %s database, %v", cfg.DBDriver, err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	locker := lock.New(lockCtx, cfg.RedisAddr, lock.Options{TTL: cfg.LockTTL, Wait: cfg.LockWait})
	cancel()

	// Getting services
	store := service.NewStore(db)
	requestService := service.NewRequestService(store, locker, validate, cfg.RequestNumberPrefix)
	quoteService := service.NewQuoteService(store, locker, validate)
	leadService := service.NewLeadService(store, validate)
	catalogService := service.NewCatalogService(store, validate)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("2M"))

	routes.Register(e, &routes.Handlers{
		Requests: handler.NewRequestDefault(requestService, quoteService),
		Leads:    handler.NewLeadDefault(leadService),
		Catalog:  handler.NewCatalogDefault(catalogService),
		Auth: authmiddleware.NewAuthMiddleware(&authmiddleware.AuthMiddlewareConfig{
			Validator: utils.NewTokenValidator(cfg.JWTSecret),
		}),
	})

	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal(err)
	}
}
