package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom-go/internal/crypto"
	"github.com/stockroom/stockroom-go/internal/middleware"
)

// NewRouter assembles the route table. Per-route authentication is
// explicit here:
//
//	public:   POST /auth, POST /users, GET /items, GET /items/{id}, GET /health
//	guarded:  POST/PATCH/DELETE /items…, GET/PATCH/DELETE /users/{id}
//
// The credential endpoints additionally sit behind a per-IP rate limit.
func NewRouter(auth *AuthHandler, users *UserHandler, items *ItemHandler, tokens crypto.TokenOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/auth", auth.HandleSignIn)
		r.Post("/users", users.HandleCreate)
	})

	r.Get("/items", items.HandleList)
	r.Get("/items/{id}", items.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))

		r.Post("/items", items.HandleCreate)
		r.Patch("/items/{id}", items.HandleUpdate)
		r.Delete("/items/{id}", items.HandleDelete)

		r.Get("/users/{id}", users.HandleGet)
		r.Patch("/users/{id}", users.HandleUpdate)
		r.Delete("/users/{id}", users.HandleDelete)
	})

	return r
}
