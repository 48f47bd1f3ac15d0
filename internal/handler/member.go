package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/domain"
	"github.com/taskflowhq/projectd/internal/member"
	"github.com/taskflowhq/projectd/internal/middleware"
)

// MemberHandler handles project roster operations.
type MemberHandler struct {
	members *member.Service
	logger  *slog.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(members *member.Service, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

// AddMemberRequest adds a member by known user id.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AddMemberByEmailRequest adds a member by directory email lookup.
type AddMemberByEmailRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateRoleRequest overwrites a member's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// List lists all members of a project.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	members, err := h.members.List(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"members": members,
		"count":   len(members),
	})
}

// Add inserts a membership for a known user id. The caller must hold OWNER or
// ADMIN on the project.
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id must be a UUID"})
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	added, err := h.members.Add(r.Context(), id, ident.UserID, userID, role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, added)
}

// AddByEmail resolves the email through the user directory and inserts the
// membership. The caller's credential is forwarded to the directory as-is.
func (h *MemberHandler) AddByEmail(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req AddMemberByEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	added, err := h.members.AddByEmail(r.Context(), id, req.Email, role, ident.UserID, ident.Credential)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, added)
}

// UpdateRole overwrites a member's role.
func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	userID, ok := memberUserID(w, r)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.members.UpdateRole(r.Context(), id, userID, role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Remove deletes a membership.
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	userID, ok := memberUserID(w, r)
	if !ok {
		return
	}

	if err := h.members.Remove(r.Context(), id, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func memberUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user id must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}
