// @title         login-backend API
// @version       1.0
// @description   Username/password and Google Sign-In authentication issuing JSON Web Tokens.
// @BasePath      /
// @schemes       http
// @host          localhost:8000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Accepts "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	_ "github.com/NandhiniKarvendhan/login-backend/docs"

	// internal imports
	"github.com/NandhiniKarvendhan/login-backend/api/http"
	"github.com/NandhiniKarvendhan/login-backend/api/http/handlers"
	"github.com/NandhiniKarvendhan/login-backend/pkg/auth"
	"github.com/NandhiniKarvendhan/login-backend/pkg/config"
	"github.com/NandhiniKarvendhan/login-backend/pkg/firebase"
	"github.com/NandhiniKarvendhan/login-backend/pkg/health"
	"github.com/NandhiniKarvendhan/login-backend/pkg/health/checkers"
	mongorepo "github.com/NandhiniKarvendhan/login-backend/pkg/repository/mongo"
	pgrepo "github.com/NandhiniKarvendhan/login-backend/pkg/repository/postgres"
	"github.com/NandhiniKarvendhan/login-backend/pkg/security/jwt"
	mongostore "github.com/NandhiniKarvendhan/login-backend/pkg/storage/mongo"
	pgstore "github.com/NandhiniKarvendhan/login-backend/pkg/storage/postgres"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	ctx := context.Background()

	// Connect the user store; closeStore runs after the server stops.
	userRepo, checker, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("open user store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Firebase Admin client for Google Sign-In
	var verifier *firebase.Verifier
	fbClient, err := firebase.NewClient(ctx, firebase.Credentials{
		ProjectID: cfg.FirebaseProjectID,
		JSON:      cfg.FirebaseCredentialsJSON,
		File:      cfg.FirebaseCredentialsFile,
	})
	if err != nil {
		log.Warn("firebase not configured, google sign-in will reject all tokens", "error", err)
		verifier = firebase.NewVerifier(nil)
	} else {
		verifier = firebase.NewVerifier(fbClient)
	}

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authUC := auth.NewAuthService(userRepo, jwtGen, verifier)
	authHandler := handlers.NewAuthHandler(authUC, log)

	readiness := health.NewService(checker)
	healthHandler := handlers.NewHealthHandler(readiness, log)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	app := fiber.New(fiber.Config{AppName: "login-backend"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(http.CrossOriginIsolation())
	app.Use(http.CORS(cfg.Origins(), log))

	http.Register(app, authHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		addr := "0.0.0.0:" + cfg.Port
		log.Info("HTTP server listening", "addr", addr, "frontend", cfg.FrontendURL)
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", "error", err)
		}
	}
}

// openStore connects the configured backend and returns its repository,
// readiness checker and a close function.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (auth.UserRepository, health.Checker, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		repo, err := pgrepo.NewUserRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		log.Info("postgres connected")
		return repo, checkers.NewPostgresChecker(pool), pool.Close, nil
	default:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error("mongo disconnect", "error", err)
			}
		}
		repo, err := mongorepo.NewUserRepository(ctx, db)
		if err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		log.Info("mongo connected", "database", db.Name())
		return repo, checkers.NewMongoChecker(client), closeFn, nil
	}
}
