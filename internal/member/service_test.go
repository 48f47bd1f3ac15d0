package member

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/domain"
	"github.com/taskflowhq/projectd/internal/identity"
)

type memberKey struct {
	projectID uuid.UUID
	userID    uuid.UUID
}

type fakeStore struct {
	projects map[uuid.UUID]db.Project
	members  map[memberKey]db.ProjectMember
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[uuid.UUID]db.Project),
		members:  make(map[memberKey]db.ProjectMember),
	}
}

func (f *fakeStore) addProject() uuid.UUID {
	id := uuid.New()
	f.projects[id] = db.Project{ID: id, Name: "p", ProjectKey: "P", OwnerID: uuid.New()}
	return id
}

func (f *fakeStore) addMember(projectID, userID uuid.UUID, role domain.Role) {
	f.members[memberKey{projectID, userID}] = db.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
		Status:    string(domain.MemberActive),
		JoinedAt:  time.Now().UTC(),
	}
}

func (f *fakeStore) GetProject(_ context.Context, id uuid.UUID) (db.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return db.Project{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetProjectMember(_ context.Context, arg db.GetProjectMemberParams) (db.ProjectMember, error) {
	m, ok := f.members[memberKey{arg.ProjectID, arg.UserID}]
	if !ok {
		return db.ProjectMember{}, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) ListProjectMembers(_ context.Context, projectID uuid.UUID) ([]db.ProjectMember, error) {
	var out []db.ProjectMember
	for k, m := range f.members {
		if k.projectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateProjectMember(_ context.Context, arg db.CreateProjectMemberParams) (db.ProjectMember, error) {
	k := memberKey{arg.ProjectID, arg.UserID}
	if _, ok := f.members[k]; ok {
		return db.ProjectMember{}, domain.ErrConflict
	}
	m := db.ProjectMember{
		ID:        arg.ID,
		ProjectID: arg.ProjectID,
		UserID:    arg.UserID,
		Role:      arg.Role,
		Status:    arg.Status,
		JoinedAt:  time.Now().UTC(),
	}
	f.members[k] = m
	return m, nil
}

func (f *fakeStore) UpdateProjectMemberRole(_ context.Context, arg db.UpdateProjectMemberRoleParams) (db.ProjectMember, error) {
	k := memberKey{arg.ProjectID, arg.UserID}
	m, ok := f.members[k]
	if !ok {
		return db.ProjectMember{}, domain.ErrNotFound
	}
	m.Role = arg.Role
	m.UpdatedAt = time.Now().UTC()
	f.members[k] = m
	return m, nil
}

func (f *fakeStore) DeleteProjectMember(_ context.Context, arg db.DeleteProjectMemberParams) error {
	k := memberKey{arg.ProjectID, arg.UserID}
	if _, ok := f.members[k]; !ok {
		return domain.ErrNotFound
	}
	delete(f.members, k)
	return nil
}

// fakeResolver counts calls so tests can assert the guard short-circuits
// before any directory lookup.
type fakeResolver struct {
	user  *identity.User
	err   error
	calls int
}

func (f *fakeResolver) ResolveByEmail(context.Context, string, string) (*identity.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeResolver) ResolveBySubject(context.Context, string, string) (*identity.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestAddByEmail(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	owner := uuid.New()
	store.addMember(projectID, owner, domain.RoleOwner)

	newUser := &identity.User{ID: uuid.New(), Email: "new@example.com"}
	resolver := &fakeResolver{user: newUser}
	svc := NewService(store, resolver, nil, nil)

	m, err := svc.AddByEmail(context.Background(), projectID, "new@example.com", domain.RoleMember, owner, "Bearer tok")
	if err != nil {
		t.Fatalf("add by email: %v", err)
	}
	if m.UserID != newUser.ID {
		t.Fatalf("member bound to %s, want %s", m.UserID, newUser.ID)
	}
	if m.Role != domain.RoleMember {
		t.Fatalf("role %s, want MEMBER", m.Role)
	}
	if m.Status != domain.MemberActive {
		t.Fatalf("status %s, want ACTIVE", m.Status)
	}
}

func TestAddByEmailNonMemberForbidden(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	resolver := &fakeResolver{user: &identity.User{ID: uuid.New()}}
	svc := NewService(store, resolver, nil, nil)

	_, err := svc.AddByEmail(context.Background(), projectID, "x@example.com", domain.RoleMember, uuid.New(), "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver called %d times for unauthorized caller", resolver.calls)
	}
}

func TestAddByEmailMemberRoleForbidden(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	caller := uuid.New()
	store.addMember(projectID, caller, domain.RoleMember)

	resolver := &fakeResolver{user: &identity.User{ID: uuid.New()}}
	svc := NewService(store, resolver, nil, nil)

	_, err := svc.AddByEmail(context.Background(), projectID, "x@example.com", domain.RoleMember, caller, "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for MEMBER caller, got %v", err)
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver called %d times for insufficient role", resolver.calls)
	}
}

func TestAddByEmailResolverFailureIsUserNotFound(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	owner := uuid.New()
	store.addMember(projectID, owner, domain.RoleOwner)

	resolver := &fakeResolver{err: domain.ErrUserLookup}
	svc := NewService(store, resolver, nil, nil)

	_, err := svc.AddByEmail(context.Background(), projectID, "ghost@example.com", domain.RoleMember, owner, "")
	if !errors.Is(err, domain.ErrUserLookup) {
		t.Fatalf("expected ErrUserLookup, got %v", err)
	}

	members, _ := store.ListProjectMembers(context.Background(), projectID)
	if len(members) != 1 {
		t.Fatalf("expected only the owner membership, got %d rows", len(members))
	}
}

func TestAddByEmailDuplicateConflict(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	owner := uuid.New()
	store.addMember(projectID, owner, domain.RoleOwner)

	existing := uuid.New()
	store.addMember(projectID, existing, domain.RoleMember)

	resolver := &fakeResolver{user: &identity.User{ID: existing, Email: "dup@example.com"}}
	svc := NewService(store, resolver, nil, nil)

	_, err := svc.AddByEmail(context.Background(), projectID, "dup@example.com", domain.RoleAdmin, owner, "")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAddDuplicateConflict(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	owner := uuid.New()
	store.addMember(projectID, owner, domain.RoleOwner)

	userID := uuid.New()
	svc := NewService(store, &fakeResolver{}, nil, nil)

	if _, err := svc.Add(context.Background(), projectID, owner, userID, domain.RoleMember); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.Add(context.Background(), projectID, owner, userID, domain.RoleMember)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on second add, got %v", err)
	}

	members, _ := store.ListProjectMembers(context.Background(), projectID)
	if len(members) != 2 { // owner + the one added
		t.Fatalf("expected 2 memberships, got %d", len(members))
	}
}

func TestAddProjectMissing(t *testing.T) {
	store := newFakeStore()
	projectID := uuid.New() // never created
	owner := uuid.New()
	store.addMember(projectID, owner, domain.RoleOwner)

	svc := NewService(store, &fakeResolver{}, nil, nil)
	_, err := svc.Add(context.Background(), projectID, owner, uuid.New(), domain.RoleMember)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRoleRoundTrip(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	userID := uuid.New()
	store.addMember(projectID, userID, domain.RoleMember)

	svc := NewService(store, &fakeResolver{}, nil, nil)

	updated, err := svc.UpdateRole(context.Background(), projectID, userID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role %s, want ADMIN", updated.Role)
	}

	members, _ := svc.List(context.Background(), projectID)
	if len(members) != 1 || members[0].Role != domain.RoleAdmin {
		t.Fatalf("list does not reflect role change: %+v", members)
	}

	if err := svc.Remove(context.Background(), projectID, userID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	members, _ = svc.List(context.Background(), projectID)
	if len(members) != 0 {
		t.Fatalf("expected empty roster after removal, got %d", len(members))
	}
}

func TestUpdateRoleNotFound(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	svc := NewService(store, &fakeResolver{}, nil, nil)

	_, err := svc.UpdateRole(context.Background(), projectID, uuid.New(), domain.RoleAdmin)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveNotFound(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	svc := NewService(store, &fakeResolver{}, nil, nil)

	err := svc.Remove(context.Background(), projectID, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
