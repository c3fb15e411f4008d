// @title Viaja+ Backend API
// @version 1.0
// @description Viaja+ Backend API for collaborative trip planning
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	_ "VIAJAPLUS_BACK-END/docs" // swagger docs registration
	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/database"
	"VIAJAPLUS_BACK-END/internal/handlers"
	"VIAJAPLUS_BACK-END/internal/invitations"
	"VIAJAPLUS_BACK-END/internal/membership"
	"VIAJAPLUS_BACK-END/internal/notifications"
	"VIAJAPLUS_BACK-END/internal/routes"
	"VIAJAPLUS_BACK-END/internal/store/postgres"
	"VIAJAPLUS_BACK-END/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// pgxpool with simple protocol (needed when connecting through PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "viajaplus-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000" // 30s
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	// Apply pending schema migrations on boot
	{
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	st := postgres.New(pool)

	var emailer *utils.EmailService
	if cfg.IsEmailConfigured() {
		emailer = utils.NewEmailService(&cfg.Email)
	} else {
		log.Println("Email not configured; invitation and reset emails will be logged only")
	}

	notifier := notifications.NewService(st)
	gate := membership.NewGate(st, notifier)

	var invEmailer invitations.Emailer
	if emailer != nil {
		invEmailer = emailer
	}
	manager := invitations.NewManager(st, gate, notifier, invEmailer)

	h := routes.Handlers{
		Auth:           handlers.NewAuthHandler(st, cfg),
		GoogleAuth:     handlers.NewGoogleAuthHandler(st, cfg),
		ForgotPassword: handlers.NewForgotPasswordHandler(st, cfg, emailer),
		Profile:        handlers.NewProfileHandler(st),
		Health:         handlers.NewHealthHandler(pool),
		Trips:          handlers.NewTripsHandler(st, gate),
		Invitations:    handlers.NewInvitationsHandler(manager),
		Members:        handlers.NewMembersHandler(gate),
		Expenses:       handlers.NewExpensesHandler(st, gate),
		Itinerary:      handlers.NewItineraryHandler(st, gate),
		Bookings:       handlers.NewBookingsHandler(st, gate),
		Places:         handlers.NewPlacesHandler(st, gate),
		Notifications:  handlers.NewNotificationsHandler(st),
	}
	routes.SetupRoutes(h, cfg)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
