// controllers/report.go
package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"fieldserve-backend/config"
	"fieldserve-backend/models"
	"fieldserve-backend/services"
	"fieldserve-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateReportInput defines the expected JSON structure for creating a service report
type CreateReportInput struct {
	CustomerID      string     `json:"customerId" binding:"required"`
	EquipmentType   string     `json:"equipmentType"`
	EquipmentModel  string     `json:"equipmentModel"`
	SerialNumber    string     `json:"serialNumber"`
	Description     string     `json:"description"`
	Findings        string     `json:"findings"`
	Recommendations string     `json:"recommendations"`
	TechnicianName  string     `json:"technicianName"`
	ServiceDate     *time.Time `json:"serviceDate" binding:"required"`
	CompletionDate  *time.Time `json:"completionDate"`
	NextServiceDate *time.Time `json:"nextServiceDate"`
}

// UpdateReportInput defines the expected JSON structure for updating a service report.
// Status is deliberately absent: it only moves through finalize or email dispatch.
type UpdateReportInput struct {
	EquipmentType   *string    `json:"equipmentType"`
	EquipmentModel  *string    `json:"equipmentModel"`
	SerialNumber    *string    `json:"serialNumber"`
	Description     *string    `json:"description"`
	Findings        *string    `json:"findings"`
	Recommendations *string    `json:"recommendations"`
	TechnicianName  *string    `json:"technicianName"`
	ServiceDate     *time.Time `json:"serviceDate"`
	CompletionDate  *time.Time `json:"completionDate"`
	NextServiceDate *time.Time `json:"nextServiceDate"`
}

// CreateReport creates a new service report in draft status
func CreateReport(c *gin.Context) {
	var input CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	// The customer must exist
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer does not exist")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	report := models.ServiceReport{
		CustomerID:      customerUUID,
		EquipmentType:   input.EquipmentType,
		EquipmentModel:  input.EquipmentModel,
		SerialNumber:    input.SerialNumber,
		Description:     input.Description,
		Findings:        input.Findings,
		Recommendations: input.Recommendations,
		TechnicianName:  input.TechnicianName,
		ServiceDate:     *input.ServiceDate,
		CompletionDate:  input.CompletionDate,
		NextServiceDate: input.NextServiceDate,
		Status:          models.ReportStatusDraft,
	}

	if err := config.DB.Create(&report).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetReports retrieves all service reports, optionally filtered by customer or status
func GetReports(c *gin.Context) {
	query := config.DB.Preload("Customer").Order("created_at DESC")

	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.ServiceReport
	if err := query.Find(&reports).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reports")
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport retrieves a specific report with its customer and ordered photos
func GetReport(c *gin.Context) {
	reportUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	var report models.ServiceReport
	err = config.DB.
		Preload("Customer").
		Preload("Photos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index ASC")
		}).
		First(&report, "id = ?", reportUUID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateReport updates an existing report's fields
func UpdateReport(c *gin.Context) {
	reportUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	var input UpdateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var report models.ServiceReport
	if err := config.DB.First(&report, "id = ?", reportUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.EquipmentType != nil {
		report.EquipmentType = *input.EquipmentType
	}
	if input.EquipmentModel != nil {
		report.EquipmentModel = *input.EquipmentModel
	}
	if input.SerialNumber != nil {
		report.SerialNumber = *input.SerialNumber
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.Findings != nil {
		report.Findings = *input.Findings
	}
	if input.Recommendations != nil {
		report.Recommendations = *input.Recommendations
	}
	if input.TechnicianName != nil {
		report.TechnicianName = *input.TechnicianName
	}
	if input.ServiceDate != nil {
		report.ServiceDate = *input.ServiceDate
	}
	if input.CompletionDate != nil {
		report.CompletionDate = input.CompletionDate
	}
	if input.NextServiceDate != nil {
		report.NextServiceDate = input.NextServiceDate
	}

	if err := config.DB.Save(&report).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// FinalizeReport marks a report completed. Finalizing an already
// completed report is a no-op.
func FinalizeReport(c *gin.Context) {
	reportUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	var report models.ServiceReport
	if err := config.DB.First(&report, "id = ?", reportUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if report.Status != models.ReportStatusCompleted {
		report.Status = models.ReportStatusCompleted
		if err := config.DB.Save(&report).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to finalize report")
			return
		}
	}

	c.JSON(http.StatusOK, report)
}

// DeleteReport deletes a report. Its photos (rows and stored files)
// are removed first; the report row only goes once they are gone.
func DeleteReport(c *gin.Context) {
	reportUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	var report models.ServiceReport
	if err := config.DB.First(&report, "id = ?", reportUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var photos []models.ReportPhoto
	if err := config.DB.Where("report_id = ?", reportUUID).Find(&photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load report photos")
		return
	}

	if err := config.DB.Where("report_id = ?", reportUUID).Delete(&models.ReportPhoto{}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete report photos")
		return
	}

	if err := config.DB.Delete(&report).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete report")
		return
	}

	// Stored files go last, best-effort
	for _, photo := range photos {
		if photo.StorageKey != "" {
			os.Remove(filepath.Join(uploadDir, photo.StorageKey))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// ReportEmailController triggers the email dispatch for a report.
type ReportEmailController struct {
	Mailer *services.ReportMailer
}

// SendReportEmail renders the report and emails it to the operator
// mailbox. On success a draft report comes back completed.
func (rc *ReportEmailController) SendReportEmail(c *gin.Context) {
	reportID := c.Param("id")
	if reportID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Report ID is required")
		return
	}

	reportUUID, err := uuid.Parse(reportID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	emailID, err := rc.Mailer.Dispatch(c.Request.Context(), reportUUID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		} else {
			utils.RespondWithError(c, http.StatusBadGateway, "Failed to send report email")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report emailed successfully",
		"emailId": emailID,
	})
}
