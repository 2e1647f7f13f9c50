package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account.
type User struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	Username  string    `gorm:"column:username;not null;unique" json:"username"`
	// Password is the bcrypt hash. It is never serialized.
	Password string `gorm:"column:password;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an ID when none is set.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
