package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// compositeIndexes back the list queries that filter on one column and sort
// on another. Single-column indexes come from the model tags.
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	// Activity feeds sort newest first within one container
	{"activity_logs", "idx_activity_logs_task_time", "task_id, occurred_at"},
	{"activity_logs", "idx_activity_logs_project_time", "project_id, occurred_at"},
	{"activity_logs", "idx_activity_logs_board_time", "board_id, occurred_at"},

	// Board loading orders columns and tasks
	{"columns", "idx_columns_board_order", "board_id, sort_order"},
	{"tasks", "idx_tasks_column_position", "column_id, position"},
}

// AddIndexes creates the composite indexes that do not exist yet
func AddIndexes(db *gorm.DB) error {
	for _, idx := range compositeIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.WithField("index", idx.name).Debug("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(log.Fields{
			"index": idx.name,
			"table": idx.table,
		}).Info("created index")
	}
	return nil
}

// MigrateDatabase runs AutoMigrate followed by the index pass
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
