package controllers

import (
	"net/http"
	"sort"
	"time"

	"fieldserve-backend/config"
	"fieldserve-backend/models"
	"fieldserve-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DraftDeadline struct {
	ReportID     uuid.UUID `json:"reportId"`
	CustomerName string    `json:"customerName"`
	Equipment    string    `json:"equipment"`
	Deadline     string    `json:"deadline"` // e.g. "Due today", "3 days overdue"
}

type ActivityEntry struct {
	Type      string    `json:"type"`   // "report" or "customer"
	Action    string    `json:"action"` // "created" or "updated"
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildRecentActivity merges recently created reports with recently
// touched customers into one feed: a customer whose created and updated
// timestamps match exactly counts as "created", anything else as
// "updated". The merged list is newest-first and capped at five.
func BuildRecentActivity(reports []models.ServiceReport, customers []models.Customer) []ActivityEntry {
	entries := make([]ActivityEntry, 0, len(reports)+len(customers))

	for _, r := range reports {
		title := r.EquipmentType
		if title == "" {
			title = "Service report"
		}
		entries = append(entries, ActivityEntry{
			Type:      "report",
			Action:    "created",
			ID:        r.ID,
			Title:     title,
			Timestamp: r.CreatedAt,
		})
	}

	for _, cust := range customers {
		action := "updated"
		if cust.CreatedAt.Equal(cust.UpdatedAt) {
			action = "created"
		}
		entries = append(entries, ActivityEntry{
			Type:      "customer",
			Action:    action,
			ID:        cust.ID,
			Title:     cust.Name,
			Timestamp: cust.UpdatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}

// GetDashboardOverview returns counts, draft deadlines and the recent
// activity feed
func GetDashboardOverview(c *gin.Context) {
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	var totalReports int64
	config.DB.Model(&models.ServiceReport{}).Count(&totalReports)

	var draftReports int64
	config.DB.Model(&models.ServiceReport{}).
		Where("status = ?", models.ReportStatusDraft).Count(&draftReports)

	// Draft deadlines
	var drafts []models.ServiceReport
	if err := config.DB.Preload("Customer").
		Where("status = ?", models.ReportStatusDraft).
		Order("completion_date ASC NULLS LAST").
		Limit(10).
		Find(&drafts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve draft reports")
		return
	}

	now := time.Now()
	draftDeadlines := make([]DraftDeadline, 0, len(drafts))
	for _, draft := range drafts {
		draftDeadlines = append(draftDeadlines, DraftDeadline{
			ReportID:     draft.ID,
			CustomerName: draft.Customer.Name,
			Equipment:    draft.EquipmentType,
			Deadline:     utils.CompletionLabel(draft.CompletionDate, now),
		})
	}

	// Recent activity
	var recentReports []models.ServiceReport
	config.DB.Order("created_at DESC").Limit(10).Find(&recentReports)

	var recentCustomers []models.Customer
	config.DB.Order("updated_at DESC").Limit(10).Find(&recentCustomers)

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers": totalCustomers,
		"totalReports":   totalReports,
		"draftReports":   draftReports,
		"draftDeadlines": draftDeadlines,
		"recentActivity": BuildRecentActivity(recentReports, recentCustomers),
	})
}
