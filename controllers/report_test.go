package controllers

import (
	"net/http"
	"testing"

	"fieldserve-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteReportRemovesPhotosFirst(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db)
	report := createReport(t, db, customer.ID, models.ReportStatusDraft)

	for i := 0; i < 3; i++ {
		photo := models.ReportPhoto{
			ReportID:   report.ID,
			PhotoURL:   "http://localhost:8080/uploads/reports/x.jpg",
			StorageKey: "",
			OrderIndex: i,
		}
		require.NoError(t, db.Create(&photo).Error)
	}

	w := invokeWithID(DeleteReport, report.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var photoCount int64
	require.NoError(t, db.Model(&models.ReportPhoto{}).Where("report_id = ?", report.ID).Count(&photoCount).Error)
	assert.EqualValues(t, 0, photoCount)

	var reportCount int64
	require.NoError(t, db.Model(&models.ServiceReport{}).Where("id = ?", report.ID).Count(&reportCount).Error)
	assert.EqualValues(t, 0, reportCount)
}

func TestFinalizeReportCompletesDraft(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db)
	report := createReport(t, db, customer.ID, models.ReportStatusDraft)

	w := invokeWithID(FinalizeReport, report.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.ServiceReport
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusCompleted, updated.Status)
}

func TestFinalizeCompletedReportIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	customer := createCustomer(t, db)
	report := createReport(t, db, customer.ID, models.ReportStatusCompleted)

	w := invokeWithID(FinalizeReport, report.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var after models.ServiceReport
	require.NoError(t, db.First(&after, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusCompleted, after.Status)
}

func TestFinalizeReportNotFound(t *testing.T) {
	setupTestDB(t)

	w := invokeWithID(FinalizeReport, "0b1e7c1a-9be2-4c1f-9d8a-222222222222")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
