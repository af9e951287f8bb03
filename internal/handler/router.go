package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	eventsHandler "todoapi/internal/handler/events"
	todoHandler "todoapi/internal/handler/todo"
	middlewarePkg "todoapi/internal/middleware"
	todoModel "todoapi/internal/model/todo"
	"todoapi/internal/service/events"
)

// NewRouter wires HTTP routes to the store and the change broadcaster.
func NewRouter(store todoModel.Store, broadcaster *events.Broadcaster, corsOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(corsOrigin))

	todoHandler.New(store, broadcaster).RegisterRoutes(r)
	eventsHandler.New(broadcaster).RegisterRoutes(r)

	return r
}
