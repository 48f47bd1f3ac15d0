package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/middleware"
	"github.com/taskflowhq/projectd/internal/project"
)

// ProjectHandler handles project CRUD and workflow status listing.
type ProjectHandler struct {
	projects *project.Service
	logger   *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *project.Service, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// CreateProjectRequest is the request body for creating a project. The owner
// is always the authenticated caller, never a body field.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	ProjectKey  string `json:"project_key"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// UpdateProjectRequest is the request body for updating a project.
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	ProjectKey  string `json:"project_key"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// Create creates a project with its default workflow and owner membership.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.ProjectKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project_key is required"})
		return
	}

	created, err := h.projects.Create(r.Context(), project.CreateParams{
		Name:        req.Name,
		ProjectKey:  req.ProjectKey,
		Description: req.Description,
		Type:        req.Type,
		OwnerID:     ident.UserID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List lists all projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"count":    len(projects),
	})
}

// Get retrieves a project by ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Update overwrites a project's mutable fields. An absent owner_id keeps the
// current owner.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.ProjectKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project_key is required"})
		return
	}

	ownerID := uuid.Nil
	if req.OwnerID != "" {
		parsed, err := uuid.Parse(req.OwnerID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "owner_id must be a UUID"})
			return
		}
		ownerID = parsed
	} else {
		current, err := h.projects.Get(r.Context(), id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		ownerID = current.OwnerID
	}

	updated, err := h.projects.Update(r.Context(), id, project.UpdateParams{
		Name:        req.Name,
		ProjectKey:  req.ProjectKey,
		Description: req.Description,
		Type:        req.Type,
		OwnerID:     ownerID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a project together with its statuses and memberships.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListStatuses returns the project's workflow statuses in display order.
func (h *ProjectHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	statuses, err := h.projects.ListStatuses(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"statuses": statuses,
		"count":    len(statuses),
	})
}

func projectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project id must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}
