// controllers/sms.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"fieldserve-backend/config"
	"fieldserve-backend/models"
	"fieldserve-backend/services"
	"fieldserve-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SMSController handles outbound SMS sends and notification history.
type SMSController struct {
	SMS       *services.SMSService
	Reminders *services.ReminderService
}

// SendReminderInput defines the expected JSON structure for a due-date reminder
type SendReminderInput struct {
	CustomerID      string     `json:"customerId" binding:"required"`
	Phone           string     `json:"phone" binding:"required"`
	CustomerName    string     `json:"customerName" binding:"required"`
	NextServiceDate *time.Time `json:"nextServiceDate" binding:"required"`
}

// SendCustomInput defines the expected JSON structure for a free-text SMS
type SendCustomInput struct {
	CustomerID string  `json:"customerId" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Message    string  `json:"message" binding:"required"`
	ReportID   *string `json:"reportId"`
}

// SendReminder sends the templated due-date reminder to a customer
func (sc *SMSController) SendReminder(c *gin.Context) {
	var input SendReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if err := ensureCustomerExists(c, customerUUID); err != nil {
		return
	}

	notification, err := sc.SMS.SendDueDateReminder(customerUUID, nil, input.Phone, input.CustomerName, *input.NextServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send SMS")
		return
	}

	c.JSON(http.StatusOK, notification)
}

// SendCustom sends free-text SMS to a customer
func (sc *SMSController) SendCustom(c *gin.Context) {
	var input SendCustomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if err := ensureCustomerExists(c, customerUUID); err != nil {
		return
	}

	var reportID *uuid.UUID
	if input.ReportID != nil && *input.ReportID != "" {
		parsed, err := uuid.Parse(*input.ReportID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
			return
		}
		reportID = &parsed
	}

	notification, err := sc.SMS.SendCustom(customerUUID, reportID, input.Phone, input.Message)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send SMS")
		return
	}

	c.JSON(http.StatusOK, notification)
}

// GetNotifications lists SMS notification history, newest first
func (sc *SMSController) GetNotifications(c *gin.Context) {
	query := config.DB.Order("created_at DESC")

	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	var notifications []models.SMSNotification
	if err := query.Find(&notifications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// RunReminders triggers the scheduled due-date reminder pass on demand
func (sc *SMSController) RunReminders(c *gin.Context) {
	sc.Reminders.SendDueReminders()
	c.JSON(http.StatusOK, gin.H{"message": "Reminder run completed"})
}

// ensureCustomerExists responds with the appropriate error itself; an
// error return just tells the caller to stop.
func ensureCustomerExists(c *gin.Context, customerID uuid.UUID) error {
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return err
	}
	return nil
}
