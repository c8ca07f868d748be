package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportPhoto struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ReportID uuid.UUID `gorm:"type:uuid;index;not null"`

	PhotoURL   string `gorm:"not null"`
	StorageKey string `gorm:"not null"` // generated filename under the uploads directory
	OrderIndex int    `gorm:"default:0"`
	Caption    string

	CreatedAt time.Time
}

func (p *ReportPhoto) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
