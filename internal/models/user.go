package models

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/domain"
	"gorm.io/gorm"
)

// Account holds login credentials. It never leaves the persistence and auth layers.
type Account struct {
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
}

// Profile holds the user-facing identity.
type Profile struct {
	DisplayName string `gorm:"type:varchar(100)" json:"display_name"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
}

type User struct {
	ID uint64 `gorm:"primarykey" json:"id"`
	Account
	Profile
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ToDomain returns the profile side of the user.
func (u User) ToDomain() domain.User {
	return domain.User{
		ID: u.ID,
		Profile: domain.Profile{
			DisplayName: u.DisplayName,
			Email:       u.Email,
		},
	}
}
