package controllers

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fieldserve-backend/config"
	"fieldserve-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB points the package-global DB at a fresh sqlite file.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.ServiceReport{},
		&models.ReportPhoto{},
		&models.SMSNotification{},
	))

	config.DB = db
	return db
}

func invokeWithID(handler gin.HandlerFunc, id string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	handler(c)
	return w
}

func createCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()

	customer := models.Customer{ID: uuid.New(), Name: "Harbor Seafood Co"}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func createReport(t *testing.T, db *gorm.DB, customerID uuid.UUID, status string) models.ServiceReport {
	t.Helper()

	report := models.ServiceReport{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ServiceDate: time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC),
		Status:      status,
	}
	require.NoError(t, db.Create(&report).Error)
	return report
}
