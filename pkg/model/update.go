package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Update is a change note published against a product.
type Update struct {
	ID        string       `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"column:updated_at" json:"updatedAt"`
	Title     string       `gorm:"column:title;not null" json:"title"`
	Body      string       `gorm:"column:body;not null" json:"body"`
	Status    UpdateStatus `gorm:"column:status;type:text;not null" json:"status"`
	Version   *string      `gorm:"column:version" json:"version"`
	Asset     *string      `gorm:"column:asset" json:"asset"`
	ProductID string       `gorm:"column:product_id;not null" json:"productId"`
}

func (Update) TableName() string {
	return "updates"
}

func (u *Update) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
