package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/metrics"
	"github.com/baechuer/helpdesk/internal/transport/http/handlers"
	"github.com/baechuer/helpdesk/internal/transport/http/middleware"
	"github.com/baechuer/helpdesk/internal/transport/http/response"
)

type Options struct {
	CORSAllowedOrigins []string
	InternalSecret     string

	RLEnabled    bool
	RLLimit      int
	RLWindow     time.Duration
	LoginRLLimit int
}

type Deps struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Auth      *handlers.AuthHandler
	Tickets   *handlers.TicketsHandler
	Comments  *handlers.CommentsHandler
	Mail      *handlers.MailHandler
	Dashboard *handlers.DashboardHandler

	Authn middleware.Authenticator
}

func New(deps Deps, opts Options) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Users == nil || deps.Auth == nil {
		return nil, fmt.Errorf("nil Users/Auth handler")
	}
	if deps.Tickets == nil || deps.Comments == nil || deps.Dashboard == nil {
		return nil, fmt.Errorf("nil Tickets/Comments/Dashboard handler")
	}
	if deps.Mail == nil {
		return nil, fmt.Errorf("nil Mail handler")
	}
	if deps.Authn == nil {
		return nil, fmt.Errorf("nil authenticator")
	}

	writeErr := response.WriteError
	requireAuth := middleware.Auth(deps.Authn, writeErr)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(middleware.AccessLog)

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderXRequestID},
			ExposedHeaders:   []string{middleware.HeaderXRequestID},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if opts.RLEnabled && opts.RLLimit > 0 {
		r.Use(middleware.RateLimitByIP("global", opts.RLLimit, opts.RLWindow, writeErr))
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", deps.Users.Register)
		r.With(requireAuth, middleware.RequireRole(domain.RoleAgent, writeErr)).Get("/users", deps.Users.List)

		r.Route("/auth", func(r chi.Router) {
			login := deps.Auth.Login
			if opts.RLEnabled && opts.LoginRLLimit > 0 {
				r.With(middleware.RateLimitByIP("login", opts.LoginRLLimit, opts.RLWindow, writeErr)).Post("/login", login)
			} else {
				r.Post("/login", login)
			}
			r.With(requireAuth).Post("/logout", deps.Auth.Logout)
			r.With(requireAuth).Get("/me", deps.Auth.Me)
		})

		r.With(middleware.InternalSecret(opts.InternalSecret, writeErr)).Post("/userSendMail", deps.Mail.Send)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/tickets", deps.Tickets.List)
			r.Post("/tickets", deps.Tickets.Create)
			r.Put("/tickets", deps.Tickets.Update)
			r.Delete("/tickets", deps.Tickets.Delete)

			r.Get("/comments", deps.Comments.List)
			r.Post("/comments", deps.Comments.Create)

			r.With(middleware.RequireRole(domain.RoleAgent, writeErr)).Get("/dashboard/agent", deps.Dashboard.Summary)
			r.With(middleware.RequireRole(domain.RoleClient, writeErr)).Get("/dashboard/client", deps.Dashboard.Summary)
		})
	})

	return r, nil
}
