package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/usherkit/usher/hterror"
	"github.com/usherkit/usher/route"
	"github.com/usherkit/usher/store"
)

var healthSchema = map[string]any{
	"type":     "object",
	"required": []any{"status"},
	"properties": map[string]any{
		"status": map[string]any{"type": "string"},
	},
}

var listNotesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"limit": map[string]any{
			"type":    "integer",
			"minimum": float64(1),
			"maximum": float64(100),
			"default": float64(20),
		},
	},
}

var createNoteSchema = map[string]any{
	"type":     "object",
	"required": []any{"title"},
	"properties": map[string]any{
		"title":   map[string]any{"type": "string", "minLength": float64(1)},
		"content": map[string]any{"type": "string", "default": ""},
		"pinned":  map[string]any{"type": "boolean", "default": false},
	},
}

var noteSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "title", "created_at"},
	"properties": map[string]any{
		"id":         map[string]any{"type": "integer"},
		"title":      map[string]any{"type": "string"},
		"content":    map[string]any{"type": "string"},
		"pinned":     map[string]any{"type": "boolean"},
		"created_at": map[string]any{"type": "string"},
	},
}

// Health reports whether the service is up.
func (h *Handler) Health(_ http.ResponseWriter, _ *http.Request) (any, error) {
	return map[string]any{"status": "ok"}, nil
}

// ListNotes returns the stored notes, pinned first. The limit comes from the
// validated query parameters, with the schema default applied.
func (h *Handler) ListNotes(_ http.ResponseWriter, r *http.Request) (any, error) {
	limit, _ := route.QueryFrom(r)["limit"].(float64)

	notes, err := h.store.ListNotes(r.Context(), int64(limit))
	if err != nil {
		return nil, hterror.ServerInternal("failed listing notes", err.Error())
	}
	if notes == nil {
		notes = []*store.Note{}
	}

	return map[string]any{"notes": notes}, nil
}

// CreateNote stores a new note from the validated request body.
func (h *Handler) CreateNote(_ http.ResponseWriter, r *http.Request) (any, error) {
	body, _ := route.BodyFrom(r).(map[string]any)

	title, _ := body["title"].(string)
	content, _ := body["content"].(string)
	pinned, _ := body["pinned"].(bool)

	note, err := h.store.CreateNote(r.Context(), title, content, pinned)
	if err != nil {
		return nil, hterror.ServerInternal("failed creating note", err.Error())
	}

	return note, nil
}

// GetNote fetches a single note by its path ID.
func (h *Handler) GetNote(_ http.ResponseWriter, r *http.Request) (any, error) {
	id, err := noteID(r)
	if err != nil {
		return nil, err
	}

	note, err := h.store.GetNote(r.Context(), id)
	if err != nil {
		return nil, noteStoreError(err)
	}

	return note, nil
}

// DeleteNote removes a single note by its path ID.
func (h *Handler) DeleteNote(_ http.ResponseWriter, r *http.Request) (any, error) {
	id, err := noteID(r)
	if err != nil {
		return nil, err
	}

	if err = h.store.DeleteNote(r.Context(), id); err != nil {
		return nil, noteStoreError(err)
	}

	return map[string]any{"deleted": id}, nil
}

func noteID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, hterror.BadRequest("invalid note ID", err.Error())
	}
	return id, nil
}

func noteStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return hterror.New("note not found", hterror.WithStatus(http.StatusNotFound))
	}
	return hterror.ServerInternal("note storage failure", err.Error())
}
