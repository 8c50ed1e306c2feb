package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cvescope/backend/internal/handler/chat"
	"github.com/cvescope/backend/internal/middleware"
	"github.com/cvescope/backend/internal/service/flags"
	"github.com/cvescope/backend/internal/service/inference"
)

// Bindings carries the platform capabilities the router dispatches to. They
// are injected at construction so handlers stay testable with fakes.
type Bindings struct {
	Inference    inference.Service
	Assets       http.Handler
	SystemPrompt string
	Stream       bool

	// Flags is part of the platform binding set but no route consults it.
	Flags flags.Store
}

// NewRouter wires HTTP routes to the injected bindings.
func NewRouter(b Bindings) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	chatHandler := chat.New(b.Inference, b.SystemPrompt, b.Stream)

	r.Route("/api", func(api chi.Router) {
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Not found", http.StatusNotFound)
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		})

		chatHandler.RegisterRoutes(api)
	})

	// Everything outside /api belongs to the asset binding.
	if b.Assets != nil {
		r.Handle("/*", b.Assets)
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Not found", http.StatusNotFound)
		})
	}

	return r
}
