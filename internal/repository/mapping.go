package repository

import (
	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
)

func auditToDomain(id uint64, a models.Audit) domain.AuditableEntity {
	return domain.AuditableEntity{
		ID:             id,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastModifiedAt: a.LastModifiedAt,
		LastModifiedBy: a.LastModifiedBy,
	}
}

func auditFromDomain(e *domain.AuditableEntity) models.Audit {
	return models.Audit{
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		LastModifiedAt: e.LastModifiedAt,
		LastModifiedBy: e.LastModifiedBy,
	}
}

func projectToDomain(m models.Project) *domain.Project {
	members := make([]domain.ProjectMember, len(m.Members))
	for i, pm := range m.Members {
		members[i] = domain.ProjectMember{
			ProjectID: pm.ProjectID,
			UserID:    pm.UserID,
			Role:      domain.ProjectRole(pm.Role),
			JoinedAt:  pm.JoinedAt,
		}
	}
	boards := make([]*domain.Board, len(m.Boards))
	for i, b := range m.Boards {
		boards[i] = boardToDomain(b)
	}
	return domain.RestoreProject(domain.Project{
		AuditableEntity: auditToDomain(m.ID, m.Audit),
		Name:            m.Name,
		Description:     m.Description,
		Status:          domain.ProjectStatus(m.Status),
		Visibility:      domain.Visibility(m.Visibility),
		IsArchived:      m.IsArchived,
		OwnerID:         m.OwnerID,
	}, members, boards)
}

func projectFromDomain(p *domain.Project) models.Project {
	return models.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Visibility:  string(p.Visibility),
		IsArchived:  p.IsArchived,
		OwnerID:     p.OwnerID,
		Audit:       auditFromDomain(&p.AuditableEntity),
	}
}

func boardToDomain(m models.Board) *domain.Board {
	columns := make([]*domain.Column, len(m.Columns))
	for i, c := range m.Columns {
		columns[i] = columnToDomain(c)
	}
	members := make([]domain.BoardMember, len(m.Members))
	for i, bm := range m.Members {
		members[i] = domain.BoardMember{
			BoardID:  bm.BoardID,
			UserID:   bm.UserID,
			Role:     domain.BoardRole(bm.Role),
			JoinedAt: bm.JoinedAt,
		}
	}
	return domain.RestoreBoard(domain.Board{
		AuditableEntity: auditToDomain(m.ID, m.Audit),
		Name:            m.Name,
		Description:     m.Description,
		ProjectID:       m.ProjectID,
		IsArchived:      m.IsArchived,
	}, columns, members)
}

func boardFromDomain(b *domain.Board) models.Board {
	return models.Board{
		ID:          b.ID,
		ProjectID:   b.ProjectID,
		Name:        b.Name,
		Description: b.Description,
		IsArchived:  b.IsArchived,
		Audit:       auditFromDomain(&b.AuditableEntity),
	}
}

func columnValue(m models.Column) domain.Column {
	return domain.Column{
		AuditableEntity: auditToDomain(m.ID, m.Audit),
		Name:            m.Name,
		Order:           m.Order,
		BoardID:         m.BoardID,
		WipLimit:        m.WipLimit,
	}
}

func columnToDomain(m models.Column) *domain.Column {
	tasks := make([]*domain.BoardTask, len(m.Tasks))
	for i, t := range m.Tasks {
		tasks[i] = taskToDomain(t)
	}
	return domain.RestoreColumn(columnValue(m), tasks)
}

func columnFromDomain(c *domain.Column) models.Column {
	return models.Column{
		ID:       c.ID,
		BoardID:  c.BoardID,
		Name:     c.Name,
		Order:    c.Order,
		WipLimit: c.WipLimit,
		Audit:    auditFromDomain(&c.AuditableEntity),
	}
}

func taskToDomain(m models.Task) *domain.BoardTask {
	comments := make([]*domain.Comment, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = commentToDomain(c)
	}
	return domain.RestoreTask(domain.BoardTask{
		AuditableEntity: auditToDomain(m.ID, m.Audit),
		Title:           m.Title,
		Description:     m.Description,
		Position:        m.Position,
		Priority:        domain.Priority(m.Priority),
		DueDate:         m.DueDate,
		ColumnID:        m.ColumnID,
		AssigneeID:      m.AssigneeID,
		IsArchived:      m.IsArchived,
	}, comments)
}

func taskFromDomain(t *domain.BoardTask) models.Task {
	return models.Task{
		ID:          t.ID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Position:    t.Position,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		AssigneeID:  t.AssigneeID,
		IsArchived:  t.IsArchived,
		Audit:       auditFromDomain(&t.AuditableEntity),
	}
}

func commentToDomain(m models.Comment) *domain.Comment {
	return &domain.Comment{
		AuditableEntity: auditToDomain(m.ID, m.Audit),
		Content:         m.Content,
		TaskID:          m.TaskID,
		UserID:          m.UserID,
		IsDeleted:       m.IsDeleted,
		IsEdited:        m.IsEdited,
		EditedAt:        m.EditedAt,
	}
}

func commentFromDomain(c *domain.Comment) models.Comment {
	return models.Comment{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Content:   c.Content,
		IsDeleted: c.IsDeleted,
		IsEdited:  c.IsEdited,
		EditedAt:  c.EditedAt,
		Audit:     auditFromDomain(&c.AuditableEntity),
	}
}

func activityLogToDomain(m models.ActivityLog) (domain.ActivityLog, error) {
	activity, err := domain.NewActivity(domain.ActivityType(m.Type), m.Description, m.UserID, m.Timestamp, m.OldValues, m.NewValues)
	if err != nil {
		return domain.ActivityLog{}, err
	}
	return domain.ActivityLog{
		ID:        m.ID,
		TaskID:    m.TaskID,
		ProjectID: m.ProjectID,
		BoardID:   m.BoardID,
		Activity:  *activity,
	}, nil
}

func activityLogFromDomain(l *domain.ActivityLog) models.ActivityLog {
	a := l.Activity
	return models.ActivityLog{
		ID:          l.ID,
		TaskID:      l.TaskID,
		ProjectID:   l.ProjectID,
		BoardID:     l.BoardID,
		Type:        string(a.Type()),
		Description: a.Description(),
		UserID:      a.UserID(),
		Timestamp:   a.Timestamp(),
		OldValues:   a.OldValues(),
		NewValues:   a.NewValues(),
	}
}
