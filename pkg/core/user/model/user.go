package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persisted user record. Password holds a bcrypt hash.
type User struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName maps the entity to the users table.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the identifier on insert.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AutoMigrate creates or updates the users table and its unique email index.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
