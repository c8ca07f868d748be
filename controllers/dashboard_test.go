package controllers

import (
	"testing"
	"time"

	"fieldserve-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildRecentActivity(t *testing.T) {
	base := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)

	var reports []models.ServiceReport
	for i := 0; i < 10; i++ {
		reports = append(reports, models.ServiceReport{
			ID:            uuid.New(),
			EquipmentType: "Chiller",
			Model:         gorm.Model{CreatedAt: base.Add(time.Duration(i) * time.Hour)},
		})
	}

	var customers []models.Customer
	for i := 0; i < 10; i++ {
		created := base.Add(time.Duration(i)*time.Hour + 30*time.Minute)
		updated := created
		if i%2 == 1 {
			// Odd customers were edited after creation
			updated = created.Add(10 * time.Minute)
		}
		customers = append(customers, models.Customer{
			ID:    uuid.New(),
			Name:  "Customer",
			Model: gorm.Model{CreatedAt: created, UpdatedAt: updated},
		})
	}

	entries := BuildRecentActivity(reports, customers)

	require.Len(t, entries, 5)

	// Sorted newest first
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].Timestamp.After(entries[i].Timestamp))
	}

	// Newest is the last customer (edited at 17:40), then the last report (17:00)
	assert.Equal(t, "customer", entries[0].Type)
	assert.Equal(t, "updated", entries[0].Action)
	assert.Equal(t, customers[9].ID, entries[0].ID)

	assert.Equal(t, "report", entries[1].Type)
	assert.Equal(t, "created", entries[1].Action)
	assert.Equal(t, reports[9].ID, entries[1].ID)

	// An untouched customer reads as created
	assert.Equal(t, "customer", entries[2].Type)
	assert.Equal(t, "created", entries[2].Action)
	assert.Equal(t, customers[8].ID, entries[2].ID)
}

func TestBuildRecentActivityEmpty(t *testing.T) {
	entries := BuildRecentActivity(nil, nil)
	assert.Empty(t, entries)
}

func TestBuildRecentActivityFewerThanFive(t *testing.T) {
	reports := []models.ServiceReport{
		{ID: uuid.New(), Model: gorm.Model{CreatedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)}},
	}
	customers := []models.Customer{
		{ID: uuid.New(), Name: "Solo", Model: gorm.Model{CreatedAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)}},
	}

	entries := BuildRecentActivity(reports, customers)
	require.Len(t, entries, 2)
	assert.Equal(t, "customer", entries[0].Type)
	assert.Equal(t, "created", entries[0].Action)
	assert.Equal(t, "report", entries[1].Type)
}
