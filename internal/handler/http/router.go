package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/absensia/absensi-backend-go/internal/config"
	"github.com/absensia/absensi-backend-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	punchHandler PunchHandler,
	adminHandler AdminHandler,
	punchLimiter *middleware.RateLimiter,
	metricsHandler http.Handler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absensi-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		// Kiosk-facing endpoints; throttled per device IP
		r.Group(func(r chi.Router) {
			r.Use(punchLimiter.Middleware)
			r.Post("/face-verify", punchHandler.FaceVerify)
			r.Post("/attendance", punchHandler.Record)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/attendance/today", adminHandler.Today)
			r.Post("/attendance/update", adminHandler.Update)
		})
	})

	return r
}
