package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report lifecycle states. A report is created as draft and only ever
// moves forward; completed is terminal. in-progress is a valid stored
// value but no transition currently produces it.
const (
	ReportStatusDraft      = "draft"
	ReportStatusInProgress = "in-progress"
	ReportStatusCompleted  = "completed"
)

type ServiceReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	EquipmentType   string
	EquipmentModel  string
	SerialNumber    string
	Description     string `gorm:"type:text"`
	Findings        string `gorm:"type:text"`
	Recommendations string `gorm:"type:text"`
	TechnicianName  string

	ServiceDate     time.Time `gorm:"not null"`
	CompletionDate  *time.Time
	NextServiceDate *time.Time

	Status string `gorm:"type:varchar(20);default:'draft'"`

	Customer Customer      `gorm:"foreignKey:CustomerID"`
	Photos   []ReportPhoto `gorm:"foreignKey:ReportID"`

	gorm.Model
}

func (r *ServiceReport) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
