package repository

import (
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// FindByID loads the whole board aggregate
func (r *GormBoardRepository) FindByID(id uint64) (*domain.Board, error) {
	var board models.Board
	err := r.db.
		Preload("Members").
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Columns.Tasks.Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&board, id).Error
	if err != nil {
		return nil, err
	}
	return boardToDomain(board), nil
}

// FindMembers returns every member of the board
func (r *GormBoardRepository) FindMembers(boardID uint64) ([]domain.BoardMember, error) {
	var rows []models.BoardMember
	if err := r.db.Where("board_id = ?", boardID).Find(&rows).Error; err != nil {
		return nil, err
	}
	members := make([]domain.BoardMember, len(rows))
	for i, m := range rows {
		members[i] = domain.BoardMember{
			BoardID:  m.BoardID,
			UserID:   m.UserID,
			Role:     domain.BoardRole(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return members, nil
}

// IsWritable reports whether the board and its project are both unarchived
func (r *GormBoardRepository) IsWritable(boardID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Board{}).
		Joins("JOIN projects ON projects.id = boards.project_id").
		Where("boards.id = ? AND boards.is_archived = ? AND projects.is_archived = ?", boardID, false, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check board state: %w", err)
	}
	return count > 0, nil
}

// Save persists the board aggregate
func (r *GormBoardRepository) Save(board *domain.Board) error {
	if board.ID == 0 {
		return insertBoard(r.db, board)
	}
	row := boardFromDomain(board)
	if err := r.db.Omit(clause.Associations).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return saveBoardChildren(r.db, board)
}

func insertBoard(db *gorm.DB, board *domain.Board) error {
	row := boardFromDomain(board)
	if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	board.ID = row.ID
	return saveBoardChildren(db, board)
}

func saveBoardChildren(db *gorm.DB, board *domain.Board) error {
	for _, column := range board.Columns() {
		column.BoardID = board.ID
		if err := saveColumn(db, column); err != nil {
			return err
		}
	}
	return syncBoardMembers(db, board)
}

func saveColumn(db *gorm.DB, column *domain.Column) error {
	row := columnFromDomain(column)
	if column.ID == 0 {
		if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}
		column.ID = row.ID
	} else if err := db.Omit(clause.Associations).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save column %d: %w", column.ID, err)
	}

	for _, task := range column.Tasks() {
		// The column that holds the task is authoritative.
		task.ColumnID = column.ID
		if err := saveTask(db, task); err != nil {
			return err
		}
	}
	return nil
}

func syncBoardMembers(db *gorm.DB, board *domain.Board) error {
	members := board.Members()
	userIDs := make([]uint64, 0, len(members))
	for _, m := range members {
		row := models.BoardMember{
			BoardID:  board.ID,
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to save board member %d: %w", m.UserID, err)
		}
		userIDs = append(userIDs, m.UserID)
	}

	query := db.Where("board_id = ?", board.ID)
	if len(userIDs) > 0 {
		query = query.Where("user_id NOT IN ?", userIDs)
	}
	if err := query.Delete(&models.BoardMember{}).Error; err != nil {
		return fmt.Errorf("failed to remove board members: %w", err)
	}
	return nil
}
