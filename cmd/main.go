package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Saeed-Mujawar/contact-management-apis/config"
	"github.com/Saeed-Mujawar/contact-management-apis/db"
	authhandler "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/handler"
	authrepo "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/repository/postgres"
	authservice "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/service"
	contacthandler "github.com/Saeed-Mujawar/contact-management-apis/internal/contact/handler"
	contactrepo "github.com/Saeed-Mujawar/contact-management-apis/internal/contact/repository/postgres"
	contactservice "github.com/Saeed-Mujawar/contact-management-apis/internal/contact/service"
	apperror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/logging"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/mailer"
)

const janitorInterval = 10 * time.Minute

func main() {
	ctx := context.Background()
	log := logging.NewDefault()

	cfg := config.Load()

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error(ctx, "database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Error(ctx, "database ping failed", "error", err)
		os.Exit(1)
	}

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	userRepo := authrepo.NewPostgresRepository(pool)
	contactRepo := contactrepo.NewPostgresRepository(pool)

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.AccessExpiryMin)
	denylist := authservice.NewDenylist()
	tickets := authservice.NewResetTicketStore()
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	userService := authservice.NewUserService(userRepo, tokenService, denylist, tickets,
		smtpMailer, log, cfg.ResetExpiryMin, cfg.Domain)
	contactService := contactservice.NewContactService(contactRepo)

	requireAuth := authhandler.RequireAuth(tokenService, denylist)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperror.FiberErrorHandler(cfg.Env),
	})

	authhandler.RegisterRoutes(app, authhandler.NewAuthHandler(userService), requireAuth)
	contacthandler.RegisterRoutes(app, contacthandler.NewContactHandler(contactService), requireAuth)

	go janitor(ctx, log, denylist, tickets)

	log.Info(ctx, "server starting", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

// janitor drops denylist entries and reset tickets whose own expiry has
// passed; expired tokens fail signature verification regardless, so this
// only bounds memory.
func janitor(ctx context.Context, log logging.Logger, denylist *authservice.Denylist, tickets *authservice.ResetTicketStore) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		if n := denylist.Prune(now); n > 0 {
			log.Info(ctx, "pruned expired denylist entries", "count", n)
		}
		tickets.Prune(now)
	}
}
