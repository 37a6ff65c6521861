package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"roombooker/internal/booking"
	"roombooker/internal/config"
	"roombooker/internal/http-server/handlers/booking/acceptedToday"
	"roombooker/internal/http-server/handlers/booking/bulkUpdate"
	"roombooker/internal/http-server/handlers/booking/cancelBooking"
	"roombooker/internal/http-server/handlers/booking/cancelledBookings"
	"roombooker/internal/http-server/handlers/booking/createBooking"
	"roombooker/internal/http-server/handlers/booking/deleteBooking"
	"roombooker/internal/http-server/handlers/booking/getBookings"
	"roombooker/internal/http-server/handlers/booking/pendingBookings"
	"roombooker/internal/http-server/handlers/booking/updateStatus"
	"roombooker/internal/http-server/handlers/booking/userBookings"
	"roombooker/internal/http-server/middleware/identity"
	"roombooker/internal/http-server/middleware/mwlogger"
	"roombooker/internal/lib/logger/handlers/slogpretty"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/storage/files"
	"roombooker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting room booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	permits, err := files.NewStore(cfg.PermitDir)
	if err != nil {
		log.Error("failed to init permit storage", sl.Err(err))
		os.Exit(1)
	}

	workflow := booking.New(log, storage, storage, permits)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(identity.New())

	fs := http.FileServer(http.Dir(permits.Dir()))
	router.Handle("/permits/*", http.StripPrefix("/permits/", fs))

	router.Route("/event-bookings", func(r chi.Router) {
		r.Post("/", createBooking.New(log, workflow))
		r.Get("/", getBookings.New(log, workflow))
		r.Post("/bulk-update", bulkUpdate.New(log, workflow))
		r.Get("/accepted-today", acceptedToday.New(log, workflow))
		r.Get("/cancelled", cancelledBookings.New(log, workflow))
		r.Get("/user/{id}", userBookings.New(log, workflow))
		r.Post("/{id}/status", updateStatus.New(log, workflow))
		r.Post("/{id}/cancel", cancelBooking.New(log, workflow))
		r.Delete("/{id}", deleteBooking.New(log, workflow))
	})
	router.Get("/dashboard/pending", pendingBookings.New(log, workflow))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
