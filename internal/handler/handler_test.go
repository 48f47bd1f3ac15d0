package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/domain"
	"github.com/taskflowhq/projectd/internal/middleware"
	"github.com/taskflowhq/projectd/internal/project"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("create: %w", domain.ErrInvalid), http.StatusBadRequest},
		{fmt.Errorf("guard: %w", domain.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("resolve: %w", domain.ErrUserLookup), http.StatusNotFound},
		{fmt.Errorf("insert: %w", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, nil, tt.err)
		if rec.Code != tt.status {
			t.Fatalf("writeError(%v) status = %d, want %d", tt.err, rec.Code, tt.status)
		}
	}
}

type stubStore struct {
	bootstrapped *db.BootstrapProjectParams
}

func (s *stubStore) BootstrapProject(_ context.Context, arg db.BootstrapProjectParams) (db.Project, error) {
	s.bootstrapped = &arg
	return db.Project{
		ID:         arg.Project.ID,
		Name:       arg.Project.Name,
		ProjectKey: arg.Project.ProjectKey,
		OwnerID:    arg.Project.OwnerID,
		CreatedAt:  time.Now(),
	}, nil
}

func (s *stubStore) ListProjects(context.Context) ([]db.Project, error) { return nil, nil }

func (s *stubStore) GetProject(_ context.Context, id uuid.UUID) (db.Project, error) {
	return db.Project{}, fmt.Errorf("get project: %w", domain.ErrNotFound)
}

func (s *stubStore) UpdateProject(_ context.Context, arg db.UpdateProjectParams) (db.Project, error) {
	return db.Project{}, fmt.Errorf("update project: %w", domain.ErrNotFound)
}

func (s *stubStore) DeleteProject(context.Context, uuid.UUID) error {
	return fmt.Errorf("delete project: %w", domain.ErrNotFound)
}

func (s *stubStore) ListProjectStatuses(context.Context, uuid.UUID) ([]db.WorkflowStatus, error) {
	return nil, nil
}

func newTestRouter(store project.Store) http.Handler {
	h := NewProjectHandler(project.NewService(store, nil, nil), nil)
	r := chi.NewRouter()
	r.Use(middleware.GatewayAuth)
	r.Post("/projects", h.Create)
	r.Get("/projects/{id}", h.Get)
	return r
}

func TestCreateProjectOwnerIsCaller(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store)

	owner := uuid.New()
	req := httptest.NewRequest("POST", "/projects",
		strings.NewReader(`{"name":"Launch","project_key":"launch"}`))
	req.Header.Set("X-User-Id", owner.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if store.bootstrapped == nil {
		t.Fatal("expected bootstrap call")
	}
	if store.bootstrapped.Project.OwnerID != owner {
		t.Fatalf("owner = %s, want caller %s", store.bootstrapped.Project.OwnerID, owner)
	}
	if store.bootstrapped.Project.ProjectKey != "LAUNCH" {
		t.Fatalf("key = %q, want normalized LAUNCH", store.bootstrapped.Project.ProjectKey)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	router := newTestRouter(&stubStore{})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"project_key":"X"}`},
		{"missing key", `{"name":"X"}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/projects", strings.NewReader(tt.body))
			req.Header.Set("X-User-Id", uuid.NewString())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetProjectBadID(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest("GET", "/projects/not-a-uuid", nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest("GET", "/projects/"+uuid.NewString(), nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
