package http

import (
	"log/slog"
	"os"

	"github.com/audyningrum27/simtrendi/internal/handler/http/middleware"
	"github.com/audyningrum27/simtrendi/internal/pkg/jwt"
	"github.com/audyningrum27/simtrendi/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the deployment settings the router needs.
type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authHandler AuthHandler, leaveHandler LeaveHandler, notificationHandler NotificationHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "simtrendi"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// SSE authenticates with a short-lived query token
		r.Get("/notifikasi/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/cuti", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Put("/approval", leaveHandler.SubmitApproval)
				r.Delete("/expired", leaveHandler.SweepExpired)

				r.Get("/all", leaveHandler.ListAll)
				r.Get("/approved", leaveHandler.ListApproved)
				r.Get("/approved/{idPegawai}", leaveHandler.ApprovedSummary)
				r.Get("/daily", leaveHandler.DailyCount)
				r.Get("/pegawai/{idPegawai}", leaveHandler.ListByEmployee)
			})

			r.Route("/notifikasi", func(r chi.Router) {
				r.Get("/pegawai/{idPegawai}", notificationHandler.ListForEmployee)
				r.Get("/admin", notificationHandler.ListForAdmin)
				r.Post("/admin", notificationHandler.CreateForAdmin)
				r.Post("/pegawai", notificationHandler.CreateForEmployee)
				r.Put("/{id}/read", notificationHandler.MarkAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}
