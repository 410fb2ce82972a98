package models

// All lists every record for AutoMigrate, parents first.
func All() []any {
	return []any{
		&User{},
		&Project{},
		&ProjectMember{},
		&Board{},
		&BoardMember{},
		&Column{},
		&Task{},
		&Comment{},
		&ActivityLog{},
	}
}
