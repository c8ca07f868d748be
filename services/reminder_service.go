// services/reminder_service.go
package services

import (
	"log"
	"time"

	"fieldserve-backend/models"
	"fieldserve-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService scans for reports whose next service date is coming
// up and sends each customer a due-date SMS through SMSService.
type ReminderService struct {
	db  *gorm.DB
	sms *SMSService
}

func NewReminderService(db *gorm.DB, sms *SMSService) *ReminderService {
	return &ReminderService{db: db, sms: sms}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDueReminders)

	c.Start()
	log.Println("Service reminder scheduler started")
}

// SendDueReminders sends one reminder per report due within the next
// 7 days. Individual failures are logged and do not stop the run.
func (s *ReminderService) SendDueReminders() {
	log.Println("Starting due-date reminder processing...")

	from := utils.BeginningOfDay(time.Now())
	until := from.AddDate(0, 0, 7)

	var reports []models.ServiceReport
	if err := s.db.Preload("Customer").
		Where("next_service_date IS NOT NULL AND next_service_date >= ? AND next_service_date < ?", from, until).
		Find(&reports).Error; err != nil {
		log.Printf("Failed to fetch due reports: %v", err)
		return
	}

	for _, report := range reports {
		phone := report.Customer.BestPhone()
		if phone == "" {
			log.Printf("Report %s: customer %s has no phone number, skipping", report.ID, report.CustomerID)
			continue
		}

		reportID := report.ID
		if _, err := s.sms.SendDueDateReminder(report.CustomerID, &reportID, phone, report.Customer.Name, *report.NextServiceDate); err != nil {
			log.Printf("Report %s: failed to send reminder: %v", report.ID, err)
		}
	}

	log.Println("Due-date reminder processing completed")
}
