// services/sms_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fieldserve-backend/models"
	"fieldserve-backend/utils"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// SMSReceipt is the provider's verdict for one message that reached it.
type SMSReceipt struct {
	SID           string
	Accepted      bool
	ProviderError string
}

// SMSProvider is the outbound SMS delivery port.
type SMSProvider interface {
	Send(to, body string) (*SMSReceipt, error)
}

// TwilioProvider sends messages through the Twilio REST API.
type TwilioProvider struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioProvider() (*TwilioProvider, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, errors.New("twilio credentials not configured")
	}

	return &TwilioProvider{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}, nil
}

// Send delivers one message. An API-level rejection comes back as a
// receipt with Accepted=false; only transport failures (the provider
// was never reached cleanly) come back as an error.
func (p *TwilioProvider) Send(to, body string) (*SMSReceipt, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(p.from)
	params.SetBody(body)

	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) {
			return &SMSReceipt{Accepted: false, ProviderError: restErr.Message}, nil
		}
		return nil, err
	}

	receipt := &SMSReceipt{Accepted: true}
	if resp.Sid != nil {
		receipt.SID = *resp.Sid
	}
	return receipt, nil
}

// SMSService composes messages, calls the provider and records every
// attempt that reached it as one SMSNotification row.
type SMSService struct {
	db       *gorm.DB
	provider SMSProvider
}

func NewSMSService(db *gorm.DB, provider SMSProvider) *SMSService {
	return &SMSService{db: db, provider: provider}
}

// SendDueDateReminder sends the templated next-service reminder.
func (s *SMSService) SendDueDateReminder(customerID uuid.UUID, reportID *uuid.UUID, phone, customerName string, nextServiceDate time.Time) (*models.SMSNotification, error) {
	message := fmt.Sprintf(
		"Hi %s, this is a reminder that your equipment is due for service on %s. Please contact us to schedule a visit.",
		customerName, nextServiceDate.Format("02 Jan 2006"))
	return s.send(customerID, reportID, phone, message)
}

// SendCustom sends free-text to a customer.
func (s *SMSService) SendCustom(customerID uuid.UUID, reportID *uuid.UUID, phone, message string) (*models.SMSNotification, error) {
	return s.send(customerID, reportID, phone, message)
}

func (s *SMSService) send(customerID uuid.UUID, reportID *uuid.UUID, phone, message string) (*models.SMSNotification, error) {
	if s.provider == nil {
		return nil, errors.New("SMS provider not configured")
	}
	if !utils.ValidatePhone(phone) {
		return nil, fmt.Errorf("invalid phone number: %s", phone)
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message text is empty")
	}

	receipt, err := s.provider.Send(phone, message)
	if err != nil {
		// The provider was never reached; nothing is recorded.
		return nil, err
	}

	status := models.SMSStatusSent
	if !receipt.Accepted {
		log.Printf("SMS to %s rejected by provider: %s", phone, receipt.ProviderError)
		status = models.SMSStatusFailed
	} else if receipt.SID != "" {
		log.Printf("SMS sent to %s, SID: %s", phone, receipt.SID)
	}

	notification := models.SMSNotification{
		CustomerID: customerID,
		ReportID:   reportID,
		Phone:      phone,
		Message:    message,
		Status:     status,
		SentAt:     time.Now(),
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to record SMS notification: %w", err)
	}

	return &notification, nil
}
