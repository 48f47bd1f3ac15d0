package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role governs what a member may do to a project's roster. Closed set.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ParseRole validates a role string. Unknown values are ErrInvalid.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(s)) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalid, s)
}

// CanManageMembers reports whether a member with this role may mutate the
// project roster.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// MemberStatus is the lifecycle state of a membership. Only ACTIVE is
// assigned today; INVITED and SUSPENDED are reserved.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberInvited   MemberStatus = "INVITED"
	MemberSuspended MemberStatus = "SUSPENDED"
)

// ProjectMember binds a user identity to a project with a role.
// User data lives in the user directory service; only the id is stored here.
type ProjectMember struct {
	ID        uuid.UUID    `json:"id"`
	ProjectID uuid.UUID    `json:"project_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Role      Role         `json:"role"`
	Status    MemberStatus `json:"status"`
	JoinedAt  time.Time    `json:"joined_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
