package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name         string `gorm:"not null"`
	BusinessName string
	Email        string
	Phone        string
	OfficePhone  string
	MobilePhone  string
	Address      string
	Notes        string

	Reports       []ServiceReport   `gorm:"foreignKey:CustomerID"`
	Notifications []SMSNotification `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// BestPhone returns the number reminders should go to: mobile first,
// then the general line, then the office line.
func (c *Customer) BestPhone() string {
	if c.MobilePhone != "" {
		return c.MobilePhone
	}
	if c.Phone != "" {
		return c.Phone
	}
	return c.OfficePhone
}
