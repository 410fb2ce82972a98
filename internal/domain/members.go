package domain

import "time"

// ProjectRole is a member's role within a project.
type ProjectRole string

const (
	ProjectRoleOwner       ProjectRole = "Owner"
	ProjectRoleAdmin       ProjectRole = "Admin"
	ProjectRoleContributor ProjectRole = "Contributor"
	ProjectRoleViewer      ProjectRole = "Viewer"
)

// IsValid reports whether r is a known project role.
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleContributor, ProjectRoleViewer:
		return true
	}
	return false
}

// CanManage reports whether the role may archive the project and manage its members.
func (r ProjectRole) CanManage() bool {
	return r == ProjectRoleOwner || r == ProjectRoleAdmin
}

// ProjectMember associates a user with a project. Keyed by (ProjectID, UserID).
type ProjectMember struct {
	ProjectID uint64
	UserID    uint64
	Role      ProjectRole
	JoinedAt  time.Time
}

// BoardRole is a member's role within a board.
type BoardRole string

const (
	BoardRoleAdmin  BoardRole = "Admin"
	BoardRoleMember BoardRole = "Member"
	BoardRoleViewer BoardRole = "Viewer"
)

// IsValid reports whether r is a known board role.
func (r BoardRole) IsValid() bool {
	switch r {
	case BoardRoleAdmin, BoardRoleMember, BoardRoleViewer:
		return true
	}
	return false
}

// BoardMember associates a user with a board. Keyed by (BoardID, UserID).
type BoardMember struct {
	BoardID  uint64
	UserID   uint64
	Role     BoardRole
	JoinedAt time.Time
}
