package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdatePoint struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description;not null" json:"description"`
	UpdateID    string    `gorm:"column:update_id;not null" json:"updateId"`
}

func (UpdatePoint) TableName() string {
	return "update_points"
}

func (p *UpdatePoint) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
