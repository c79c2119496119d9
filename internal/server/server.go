package server

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"retroboard/internal/auth"
	"retroboard/internal/common"
	"retroboard/internal/middleware"
	"retroboard/internal/retro"
)

// New assembles the full route table. Mutating routes and the single-user
// read sit behind token auth; reads stay public.
func New(authHandler *auth.Handler, boardHandler *retro.Handler, tokens middleware.TokenStore) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"service": "retroboard",
			"status":  "ok",
		})
	})
	// The route list is walked lazily so it reflects the finished table.
	r.Get("/endpoints", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, routeList(r))
	})

	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)
	r.Get("/users", authHandler.ListUsers)
	r.Get("/users/{userId}/retros", boardHandler.ListForUser)

	r.Get("/retros", boardHandler.List)
	r.Get("/retros/{retroId}", boardHandler.Get)
	r.Get("/retros/{retroId}/thoughts", boardHandler.ListRetroThoughts)
	r.Get("/retros/{retroId}/actionitems", boardHandler.ListRetroActionItems)

	r.Get("/thoughts", boardHandler.ListThoughts)
	r.Get("/thoughts/{thoughtId}", boardHandler.GetThought)
	r.Get("/actionitems", boardHandler.ListActionItems)
	r.Get("/actionitems/{actionId}", boardHandler.GetActionItem)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireToken(tokens))

		r.Get("/users/{userId}", authHandler.GetUser)

		r.Post("/retros", boardHandler.Create)
		r.Patch("/retros/{retroId}", boardHandler.Update)
		r.Delete("/retros/{retroId}", boardHandler.Delete)

		r.Post("/retros/{retroId}/thoughts", boardHandler.CreateThought)
		r.Patch("/retros/thoughts/{thoughtId}", boardHandler.UpdateThought)
		r.Delete("/thoughts/{thoughtId}", boardHandler.DeleteThought)

		r.Post("/retros/{retroId}/actionitems", boardHandler.CreateActionItem)
		r.Patch("/retros/actionitems/{actionId}", boardHandler.UpdateActionItem)
		r.Delete("/actionitems/{actionId}", boardHandler.DeleteActionItem)
	})

	return r
}

// routeList flattens the route tree into "METHOD /path" strings.
func routeList(r chi.Routes) []string {
	var routes []string
	chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	sort.Strings(routes)
	return routes
}
