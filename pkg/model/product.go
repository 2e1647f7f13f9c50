package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	BelongsToID string    `gorm:"column:belongs_to_id;not null" json:"belongsToId"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
