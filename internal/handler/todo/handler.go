package todo

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"todoapi/internal/model/todo"
	"todoapi/internal/service/events"
	"todoapi/pkg/utils"
)

// Handler serves the todo CRUD surface. Every mutating request runs as
// one serialized load-transform-save cycle against the store, then
// publishes a change event for live subscribers.
type Handler struct {
	store  todo.Store
	events *events.Broadcaster
}

// New creates the todo handler.
func New(store todo.Store, broadcaster *events.Broadcaster) *Handler {
	return &Handler{
		store:  store,
		events: broadcaster,
	}
}

// RegisterRoutes mounts the todo routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/todo", h.handleList)
	r.Post("/todo", h.handleCreate)
	r.Put("/todo/{id}", h.handleUpdate)
	r.Delete("/todo/{id}", h.handleDelete)
}

// handleList returns the full collection in insertion order.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.LoadAll())
}

// handleCreate appends a new pending todo.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Todo *string `json:"todo"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Todo == nil {
		utils.RespondError(w, http.StatusBadRequest, "todo text is required")
		return
	}

	text := strings.TrimSpace(*payload.Todo)
	if text == "" {
		utils.RespondError(w, http.StatusBadRequest, "todo text must not be empty")
		return
	}

	created := todo.New(text)
	err := h.store.Update(func(items []todo.Todo) ([]todo.Todo, error) {
		return append(items, created), nil
	})
	if err != nil {
		log.Printf("failed to save created todo: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to persist todos")
		return
	}

	h.publish(events.TypeCreated, created)
	utils.RespondJSON(w, http.StatusCreated, created)
}

// handleUpdate replaces text and/or status of an existing todo. A field
// that is absent, or that trims to an empty string, keeps its stored
// value; as a consequence a field cannot be cleared to empty.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		Todo   *string `json:"todo"`
		Status *string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := ""
	if payload.Todo != nil {
		text = strings.TrimSpace(*payload.Todo)
	}
	status := ""
	if payload.Status != nil {
		status = strings.TrimSpace(*payload.Status)
	}

	var updated todo.Todo
	err := h.store.Update(func(items []todo.Todo) ([]todo.Todo, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if text != "" {
				items[i].Text = text
			}
			if status != "" {
				items[i].Status = status
			}
			items[i].Touch()
			updated = items[i]
			return items, nil
		}
		return nil, todo.ErrNotFound
	})
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Printf("failed to save updated todo %s: %v", id, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to persist todos")
		return
	}

	h.publish(events.TypeUpdated, updated)
	utils.RespondJSON(w, http.StatusOK, updated)
}

// handleDelete removes a todo by id.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removed todo.Todo
	err := h.store.Update(func(items []todo.Todo) ([]todo.Todo, error) {
		for i := range items {
			if items[i].ID == id {
				removed = items[i]
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, todo.ErrNotFound
	})
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Printf("failed to save collection after deleting %s: %v", id, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to persist todos")
		return
	}

	h.publish(events.TypeDeleted, removed)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) publish(eventType string, item todo.Todo) {
	if h.events == nil {
		return
	}
	h.events.Publish(events.Event{Type: eventType, Todo: item})
}
