package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SMSStatusPending = "pending"
	SMSStatusSent    = "sent"
	SMSStatusFailed  = "failed"
)

// SMSNotification is an append-only record of one send attempt that
// reached the provider. Attempts that fail before the provider call
// leave no row behind.
type SMSNotification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	ReportID   *uuid.UUID `gorm:"type:uuid;index"`

	Phone   string `gorm:"not null"`
	Message string `gorm:"type:text;not null"`
	Status  string `gorm:"type:varchar(20);default:'pending'"` // pending, sent, failed
	SentAt  time.Time

	CreatedAt time.Time
}

func (n *SMSNotification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
