package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mediquiz/backend/internal/api"
	"github.com/mediquiz/backend/internal/infrastructure/config"
	"github.com/mediquiz/backend/internal/remote"
	"github.com/mediquiz/backend/internal/service"
	"github.com/mediquiz/backend/internal/store"

	_ "github.com/mediquiz/backend/docs" // generated swagger docs
)

// @title           MediQuiz API
// @version         1.0
// @description     Quiz backend — sample exam questions, score quiz sessions, and track per-subject statistics with an incorrect-answer review list.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	statisticsSvc := service.NewStatisticsService(db, db, logger)
	quizSvc := service.NewQuizService(db, db, statisticsSvc, logger, cfg.DefaultExamID, cfg.DefaultQuizCount)
	syncSvc := service.NewSyncService(db, remote.NewClient(cfg.QuestionsURL), logger)
	handler := api.NewHandler(quizSvc, statisticsSvc, syncSvc, db, logger)

	// The default exam's statistics row is observed by the statistics
	// screen from the first launch on.
	statisticsSvc.EnsureStatisticsRow(context.Background(), cfg.DefaultExamID)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
