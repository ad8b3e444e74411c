package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mindwell-companion/internal/infra/logging"
	"mindwell-companion/internal/infra/metrics"
	red "mindwell-companion/internal/infra/redis"
	"mindwell-companion/internal/usecase"
)

// RateLimiter is satisfied by the redis limiter; tests swap in a fake.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Server struct {
	userUC  usecase.UserUseCase
	chatUC  usecase.ChatUseCase
	auth    *AuthManager
	limiter RateLimiter
	rate    int
	log     *zerolog.Logger
}

func NewServer(
	userUC usecase.UserUseCase,
	chatUC usecase.ChatUseCase,
	auth *AuthManager,
	limiter RateLimiter,
	ratePerMinute int,
	logger *zerolog.Logger,
) *Server {
	if ratePerMinute <= 0 {
		ratePerMinute = 30
	}
	return &Server{
		userUC:  userUC,
		chatUC:  chatUC,
		auth:    auth,
		limiter: limiter,
		rate:    ratePerMinute,
		log:     logger,
	}
}

// Router builds the chi mux with all routes and middleware attached.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.With(s.rateLimit).Post("/chat", s.handleChat)
			r.Get("/history", s.handleHistory)
		})
	})
	return r
}

// requireSession rejects requests without a valid session cookie/token and
// stashes the username in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			http.Error(w, "Login required", http.StatusUnauthorized)
			return
		}
		ctx := logging.WithUsername(r.Context(), claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimit caps chat messages per user per minute. The limiter failing is
// not a reason to block a user mid-conversation, so errors fail open.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, _ := logging.Username(r.Context())
		ok, err := s.limiter.Allow(r.Context(), red.UserChatKey(username), s.rate, time.Minute)
		if err != nil {
			s.log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			metrics.IncRateLimited()
			http.Error(w, "Too many messages, slow down a little.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
