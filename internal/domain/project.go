package domain

import "strings"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusOnHold    ProjectStatus = "OnHold"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusCancelled ProjectStatus = "Cancelled"
)

// IsValid reports whether s is a known status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Visibility controls who can discover a project.
type Visibility string

const (
	VisibilityPrivate Visibility = "Private"
	VisibilityPublic  Visibility = "Public"
)

// IsValid reports whether v is a known visibility.
func (v Visibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

const ownerRoleMessage = "Only the project owner can grant or revoke the Owner role."

// Project is the root aggregate owning boards and project members.
type Project struct {
	AuditableEntity
	Name        string
	Description string
	Status      ProjectStatus
	Visibility  Visibility
	IsArchived  bool
	OwnerID     uint64

	members []ProjectMember
	boards  []*Board
}

// CreateProject builds an active, private project whose only member is the owner.
func CreateProject(name, description string, ownerID uint64) (*Project, error) {
	name, err := validateProjectName(name)
	if err != nil {
		return nil, err
	}
	if err := requireID("ownerId", ownerID); err != nil {
		return nil, err
	}
	p := &Project{
		Name:        name,
		Description: description,
		Status:      ProjectStatusActive,
		Visibility:  VisibilityPrivate,
		OwnerID:     ownerID,
	}
	p.stampCreated(ownerID)
	p.members = []ProjectMember{{UserID: ownerID, Role: ProjectRoleOwner, JoinedAt: p.CreatedAt}}
	p.raise(ProjectCreatedEvent{
		DomainEvent: newDomainEvent(ownerID),
		ProjectID:   p.ID,
		Name:        name,
		OwnerID:     ownerID,
	})
	return p, nil
}

// RestoreProject rebuilds a persisted project from its members and boards.
func RestoreProject(p Project, members []ProjectMember, boards []*Board) *Project {
	project := &p
	project.events = nil
	project.members = append([]ProjectMember(nil), members...)
	project.boards = append([]*Board(nil), boards...)
	return project
}

// Members returns a copy of the project's memberships.
func (p *Project) Members() []ProjectMember {
	out := make([]ProjectMember, len(p.members))
	copy(out, p.members)
	return out
}

// Boards returns the project's boards.
func (p *Project) Boards() []*Board {
	out := make([]*Board, len(p.boards))
	copy(out, p.boards)
	return out
}

// IsMember reports whether userID belongs to the project.
func (p *Project) IsMember(userID uint64) bool {
	_, ok := p.MemberRole(userID)
	return ok
}

// MemberRole returns the user's project role.
func (p *Project) MemberRole(userID uint64) (ProjectRole, bool) {
	for _, m := range p.members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// UpdateProject holds the arguments of Update. Nil fields are left alone;
// IsArchived is always compared.
type UpdateProject struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
	Visibility  *Visibility
	IsArchived  bool
}

// Update applies every changed field at once and raises one
// ProjectUpdatedEvent, or nothing when no field differs. Archiving through
// Update follows the same rules as Archive and cannot be reversed.
func (p *Project) Update(input UpdateProject, updatedBy uint64) error {
	if err := requireID("updatedBy", updatedBy); err != nil {
		return err
	}
	d := newDiff()

	name := p.Name
	if input.Name != nil {
		n, err := validateProjectName(*input.Name)
		if err != nil {
			return err
		}
		name = n
		d.record(FieldName, StringValue(p.Name), StringValue(name))
	}
	description := p.Description
	if input.Description != nil {
		description = *input.Description
		d.record(FieldDescription, StringValue(p.Description), StringValue(description))
	}
	status := p.Status
	if input.Status != nil {
		if !input.Status.IsValid() {
			return invalidArgument("status", "Project status is not recognized.")
		}
		status = *input.Status
		d.record(FieldStatus, StringValue(string(p.Status)), StringValue(string(status)))
	}
	visibility := p.Visibility
	if input.Visibility != nil {
		if !input.Visibility.IsValid() {
			return invalidArgument("visibility", "Project visibility is not recognized.")
		}
		visibility = *input.Visibility
		d.record(FieldVisibility, StringValue(string(p.Visibility)), StringValue(string(visibility)))
	}
	if input.IsArchived != p.IsArchived {
		if !input.IsArchived {
			return ruleViolation("An archived project cannot be unarchived.")
		}
		if status != ProjectStatusActive {
			return ruleViolation("Only active projects can be archived.")
		}
	}
	d.record(FieldIsArchived, BoolValue(p.IsArchived), BoolValue(input.IsArchived))

	if d.empty() {
		return nil
	}
	p.Name = name
	p.Description = description
	p.Status = status
	p.Visibility = visibility
	p.IsArchived = input.IsArchived
	p.touch(updatedBy)
	p.raise(ProjectUpdatedEvent{
		DomainEvent: newDomainEvent(updatedBy),
		ProjectID:   p.ID,
		OldValues:   d.old,
		NewValues:   d.new,
	})
	return nil
}

// Archive marks an active project archived. Requires an Owner or Admin.
func (p *Project) Archive(archiverID uint64) error {
	if err := p.requireManager(archiverID, "Only project owners or admins can archive the project."); err != nil {
		return err
	}
	if p.IsArchived {
		return nil
	}
	if p.Status != ProjectStatusActive {
		return ruleViolation("Only active projects can be archived.")
	}
	p.IsArchived = true
	p.touch(archiverID)
	p.raise(ProjectArchivedEvent{DomainEvent: newDomainEvent(archiverID), ProjectID: p.ID})
	return nil
}

// AddMember grants a role to a new member. Requires an Owner or Admin.
func (p *Project) AddMember(newMemberID uint64, role ProjectRole, inviterID uint64) error {
	inviterRole, err := p.managerRole(inviterID, "Only project owners or admins can add members.")
	if err != nil {
		return err
	}
	if err := requireID("newMemberId", newMemberID); err != nil {
		return err
	}
	if !role.IsValid() {
		return invalidArgument("role", "Project role is not recognized.")
	}
	if role == ProjectRoleOwner && inviterRole != ProjectRoleOwner {
		return forbidden(ownerRoleMessage)
	}
	if p.IsMember(newMemberID) {
		return ruleViolation("User %d is already a member of this project.", newMemberID)
	}
	p.members = append(p.members, ProjectMember{
		ProjectID: p.ID,
		UserID:    newMemberID,
		Role:      role,
		JoinedAt:  now(),
	})
	p.touch(inviterID)
	p.raise(ProjectMemberAddedEvent{
		DomainEvent: newDomainEvent(inviterID),
		ProjectID:   p.ID,
		UserID:      newMemberID,
		Role:        role,
	})
	return nil
}

// RemoveMember revokes a membership. Requires an Owner or Admin, and an Owner
// to remove another Owner. Removing a non-member succeeds without effect.
func (p *Project) RemoveMember(removedMemberID, removerID uint64) error {
	removerRole, err := p.managerRole(removerID, "Only project owners or admins can remove members.")
	if err != nil {
		return err
	}
	for i, m := range p.members {
		if m.UserID != removedMemberID {
			continue
		}
		if m.Role == ProjectRoleOwner && removerRole != ProjectRoleOwner {
			return forbidden(ownerRoleMessage)
		}
		p.members = append(p.members[:i:i], p.members[i+1:]...)
		p.touch(removerID)
		p.raise(ProjectMemberRemovedEvent{
			DomainEvent: newDomainEvent(removerID),
			ProjectID:   p.ID,
			UserID:      removedMemberID,
			Role:        m.Role,
		})
		return nil
	}
	return nil
}

// UpdateMember changes a member's role. Requires an Owner or Admin; an Owner
// may not change their own role and only an Owner may grant or revoke the
// Owner role. Unknown members are ignored.
func (p *Project) UpdateMember(updatedMemberID uint64, role ProjectRole, inviterID uint64) error {
	inviterRole, err := p.managerRole(inviterID, "Only project owners or admins can update members.")
	if err != nil {
		return err
	}
	if !role.IsValid() {
		return invalidArgument("role", "Project role is not recognized.")
	}
	if inviterRole == ProjectRoleOwner && updatedMemberID == inviterID {
		return ruleViolation("The project owner cannot change their own role.")
	}
	for i := range p.members {
		m := &p.members[i]
		if m.UserID != updatedMemberID {
			continue
		}
		if m.Role == role {
			return nil
		}
		if (m.Role == ProjectRoleOwner || role == ProjectRoleOwner) && inviterRole != ProjectRoleOwner {
			return forbidden(ownerRoleMessage)
		}
		old := m.Role
		m.Role = role
		p.touch(inviterID)
		p.raise(ProjectMemberUpdatedEvent{
			DomainEvent: newDomainEvent(inviterID),
			ProjectID:   p.ID,
			UserID:      updatedMemberID,
			OldRole:     old,
			NewRole:     role,
		})
		return nil
	}
	return nil
}

// CreateBoard builds a board in this project. The board's creation event is
// moved onto the project so the operation raises exactly one event.
func (p *Project) CreateBoard(name, description string, creatorID uint64) (*Board, error) {
	b, err := CreateBoard(name, description, p.ID, creatorID)
	if err != nil {
		return nil, err
	}
	p.boards = append(p.boards, b)
	for _, e := range b.DrainEvents() {
		p.raise(e)
	}
	return b, nil
}

func (p *Project) requireManager(userID uint64, message string) error {
	_, err := p.managerRole(userID, message)
	return err
}

func (p *Project) managerRole(userID uint64, message string) (ProjectRole, error) {
	role, ok := p.MemberRole(userID)
	if !ok || !role.CanManage() {
		return "", forbidden(message)
	}
	return role, nil
}

func validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidArgument("name", "Project name cannot be empty.")
	}
	return name, nil
}
