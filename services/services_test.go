package services

import (
	"path/filepath"
	"testing"
	"time"

	"fieldserve-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.ServiceReport{},
		&models.ReportPhoto{},
		&models.SMSNotification{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, mobile string) models.Customer {
	t.Helper()

	customer := models.Customer{
		ID:          uuid.New(),
		Name:        "Acme Cold Storage",
		MobilePhone: mobile,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedReport(t *testing.T, db *gorm.DB, customerID uuid.UUID, status string, nextService *time.Time) models.ServiceReport {
	t.Helper()

	report := models.ServiceReport{
		ID:              uuid.New(),
		CustomerID:      customerID,
		EquipmentType:   "Walk-in freezer",
		SerialNumber:    "WF-1042",
		Findings:        "Compressor running hot",
		Recommendations: "Replace condenser fan",
		TechnicianName:  "R. Patel",
		ServiceDate:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		NextServiceDate: nextService,
		Status:          status,
	}
	require.NoError(t, db.Create(&report).Error)
	return report
}

func notificationCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.SMSNotification{}).Count(&count).Error)
	return count
}
