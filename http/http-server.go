package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/user/auth"
)

type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type Options struct {
	JwtKey      []byte
	CorsOrigins []string
	LogLevel    slog.Level
	JsonLogs    bool
	Version     string
	Env         string
}

type HttpServer struct {
	router *chi.Mux
	server *http.Server
}

func NewHttpServer(base *slog.Logger, opts Options, handlers ...RouteRegistrar) *HttpServer {
	router := chi.NewRouter()

	reqLogger := httplog.NewLogger("speedrun", httplog.Options{
		LogLevel:         opts.LogLevel,
		JSON:             opts.JsonLogs,
		Concise:          true,
		RequestHeaders:   false,
		MessageFieldName: "message",
		Tags: map[string]string{
			"version": opts.Version,
			"env":     opts.Env,
		},
	})

	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(reqLogger))
	router.Use(middleware.Recoverer)
	router.Use(contextLogger(base))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(opts.JwtKey))

	router.Get("/programming-languages", listProgrammingLangs)
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	return &HttpServer{router: router}
}

// contextLogger makes the request id part of every log line written
// through logger.FromContext while serving the request.
func contextLogger(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithLogger(r.Context(), base)
			if id := middleware.GetReqID(ctx); id != "" {
				ctx = logger.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *HttpServer) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. It returns http.ErrServerClosed
// after Shutdown.
func (s *HttpServer) Start(address string) error {
	s.server = &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
