package domain

// ActivityLog binds one Activity to exactly one task, project or board.
// Exactly one of the three ids is set; the constructors guarantee it.
type ActivityLog struct {
	ID        uint64
	TaskID    *uint64
	ProjectID *uint64
	BoardID   *uint64
	Activity  Activity
}

// CreateActivityLogForTask records activity against a task.
func CreateActivityLogForTask(activity *Activity, taskID uint64) (*ActivityLog, error) {
	if err := checkActivityLog(activity, "taskId", taskID); err != nil {
		return nil, err
	}
	return &ActivityLog{TaskID: &taskID, Activity: *activity}, nil
}

// CreateActivityLogForProject records activity against a project.
func CreateActivityLogForProject(activity *Activity, projectID uint64) (*ActivityLog, error) {
	if err := checkActivityLog(activity, "projectId", projectID); err != nil {
		return nil, err
	}
	return &ActivityLog{ProjectID: &projectID, Activity: *activity}, nil
}

// CreateActivityLogForBoard records activity against a board.
func CreateActivityLogForBoard(activity *Activity, boardID uint64) (*ActivityLog, error) {
	if err := checkActivityLog(activity, "boardId", boardID); err != nil {
		return nil, err
	}
	return &ActivityLog{BoardID: &boardID, Activity: *activity}, nil
}

// CreateActivityLog dispatches to the constructor matching target.Kind.
func CreateActivityLog(activity *Activity, target Target) (*ActivityLog, error) {
	switch target.Kind {
	case TargetTask:
		return CreateActivityLogForTask(activity, target.ID)
	case TargetProject:
		return CreateActivityLogForProject(activity, target.ID)
	case TargetBoard:
		return CreateActivityLogForBoard(activity, target.ID)
	}
	return nil, invalidArgument("target", "Activity target kind is not recognized.")
}

// Target reports which container the log belongs to.
func (l *ActivityLog) Target() Target {
	switch {
	case l.TaskID != nil:
		return Target{Kind: TargetTask, ID: *l.TaskID}
	case l.ProjectID != nil:
		return Target{Kind: TargetProject, ID: *l.ProjectID}
	case l.BoardID != nil:
		return Target{Kind: TargetBoard, ID: *l.BoardID}
	}
	return Target{}
}

func checkActivityLog(activity *Activity, param string, id uint64) error {
	if activity == nil {
		return nullArgument("activity")
	}
	if id == 0 {
		return invalidArgument(param, "Target id must be a positive integer.")
	}
	return nil
}
