// Package api implements the demo notes API. Every endpoint is assembled
// from route decorators: method guards, middleware, and schema validation,
// so the package doubles as a usage example for the route package.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zpatrick/rbac"

	"github.com/usherkit/usher/hterror"
	"github.com/usherkit/usher/route"
	"github.com/usherkit/usher/store"
)

// Config holds the API's own configuration.
type Config struct {
	// AuthToken protects the mutating endpoints. Empty disables
	// authentication, which is only sensible for local experiments.
	AuthToken string
	// Roles maps role IDs to the action globs they're allowed to perform,
	// e.g. "notes:*" or "notes:read". Empty falls back to DefaultRoles.
	Roles map[string][]string
}

// DefaultRoles is the role policy used when none is configured: readers can
// look at notes, editors can do anything to them.
func DefaultRoles() map[string][]string {
	return map[string][]string{
		"reader": {"notes:read", "notes:list"},
		"editor": {"notes:*"},
	}
}

// Handler is the API endpoint handler.
type Handler struct {
	store  *store.Store
	logger *slog.Logger
	cfg    Config
	roles  map[string]rbac.Role
}

// Route describes a registered API route, for display purposes.
type Route struct {
	Method string
	Path   string
	Desc   string
}

// Routes lists the API's routes.
func Routes() []Route {
	return []Route{
		{http.MethodGet, "/api/v1/health", "service health"},
		{http.MethodGet, "/api/v1/notes", "list notes"},
		{http.MethodPost, "/api/v1/notes/create", "create a note (auth required)"},
		{http.MethodGet, "/api/v1/notes/{id}", "fetch a single note"},
		{http.MethodDelete, "/api/v1/notes/{id}/delete", "delete a note (auth required)"},
	}
}

// SetupHandlers configures the API handlers.
func SetupHandlers(st *store.Store, logger *slog.Logger, cfg Config) (http.Handler, error) {
	h := &Handler{store: st, logger: logger, cfg: cfg}

	rolePolicy := cfg.Roles
	if len(rolePolicy) == 0 {
		rolePolicy = DefaultRoles()
	}
	h.roles = make(map[string]rbac.Role, len(rolePolicy))
	for id, actions := range rolePolicy {
		perms := make([]rbac.Permission, 0, len(actions))
		for _, action := range actions {
			perms = append(perms, rbac.NewGlobPermission(action, "*"))
		}
		h.roles[id] = rbac.Role{RoleID: id, Permissions: perms}
	}

	group, err := route.NewGroup(h.handleError, route.WithLogger(logger))
	if err != nil {
		return nil, err //nolint:wrapcheck // Configuration error, reported as-is.
	}

	// Paths are registered without method patterns: the method guards decide,
	// so a mismatched verb surfaces as a 405 from the decorator chain.
	mux := http.NewServeMux()
	mux.Handle("/health", group.Handle(h.Health,
		route.All,
		route.Response(healthSchema),
	))
	mux.Handle("/notes", group.Handle(h.ListNotes,
		route.Get,
		route.Query(listNotesSchema),
	))
	mux.Handle("/notes/create", group.Handle(h.CreateNote,
		route.Post,
		route.Before(h.authenticate),
		route.Next(h.authorize("notes:create")),
		route.Body(createNoteSchema),
	))
	mux.Handle("/notes/{id}", group.Handle(h.GetNote,
		route.Get,
		route.Response(noteSchema),
	))
	mux.Handle("/notes/{id}/delete", group.Handle(h.DeleteNote,
		route.Delete,
		route.Before(h.authenticate),
		route.Next(h.authorize("notes:delete")),
	))

	return mux, nil
}

// handleError renders every error funneled out of a decorator chain. The
// response status code is already set from the error when it runs.
func (h *Handler) handleError(err error, _ http.ResponseWriter, r *http.Request) any {
	status := hterror.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err.Error())
	}

	body := map[string]any{"message": err.Error()}
	var herr *hterror.Error
	if errors.As(err, &herr) {
		body["message"] = herr.Message()
		if herr.Detail() != nil {
			body["detail"] = herr.Detail()
		}
	}

	return body
}
