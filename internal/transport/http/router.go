package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"microblog/internal/handler"
	"microblog/internal/httputil"
	authmw "microblog/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	FollowHandler    *handler.FollowHandler
	FeedHandler      *handler.FeedHandler
	PostHandler      *handler.PostHandler
	TranslateHandler *handler.TranslateHandler
	LastSeen         authmw.LastSeenToucher
	JWTSecret        string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/session", cfg.AuthHandler.CreateSession)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
	})

	// Public user endpoints with optional authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.JWTSecret))
		r.Use(authmw.LastSeen(cfg.LastSeen))

		r.Get("/users/{nickname}", cfg.UserHandler.GetProfile)
		r.Get("/users/{nickname}/posts", cfg.PostHandler.GetUserPosts)
		r.Get("/users/{nickname}/followers", cfg.FollowHandler.GetFollowers)
		r.Get("/users/{nickname}/following", cfg.FollowHandler.GetFollowing)
		r.Get("/posts/{id}", cfg.PostHandler.GetPost)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
		r.Use(authmw.LastSeen(cfg.LastSeen))

		// Current user endpoints
		r.Get("/me", cfg.AuthHandler.Me)
		r.Put("/me", cfg.UserHandler.UpdateProfile)

		// Auth actions that require authentication
		r.Post("/auth/logout", cfg.AuthHandler.Logout)
		r.Post("/auth/logout-all", cfg.AuthHandler.LogoutAll)

		// Follow/unfollow actions require authentication
		r.Post("/users/{nickname}/follow", cfg.FollowHandler.Follow)
		r.Delete("/users/{nickname}/follow", cfg.FollowHandler.Unfollow)

		// Feed endpoint
		r.Get("/feed", cfg.FeedHandler.GetFeed)

		// Post endpoints
		r.Post("/posts", cfg.PostHandler.CreatePost)
		r.Delete("/posts/{id}", cfg.PostHandler.DeletePost)

		// Translation passthrough
		r.Post("/translate", cfg.TranslateHandler.Translate)
	})

	return r
}
