// services/report_mailer.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"

	"fieldserve-backend/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

// EmailSender is the outbound email delivery port.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
}

// SESSender delivers email through AWS SES.
type SESSender struct {
	client *ses.Client
	from   string
}

func NewSESSender(ctx context.Context) (*SESSender, error) {
	from := os.Getenv("REPORT_EMAIL_FROM")
	if from == "" {
		return nil, errors.New("REPORT_EMAIL_FROM not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}

	return &SESSender{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (s *SESSender) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Service Report</h2>
  <h3>Customer</h3>
  <p>
    {{.Customer.Name}}{{if .Customer.BusinessName}} ({{.Customer.BusinessName}}){{end}}<br>
    {{if .Customer.Address}}{{.Customer.Address}}<br>{{end}}
    {{if .Customer.Phone}}Phone: {{.Customer.Phone}}<br>{{end}}
    {{if .Customer.Email}}Email: {{.Customer.Email}}{{end}}
  </p>
  <h3>Equipment</h3>
  <p>
    Type: {{.EquipmentType}}<br>
    Model: {{.EquipmentModel}}<br>
    Serial: {{.SerialNumber}}
  </p>
  <h3>Service Details</h3>
  <p>Technician: {{.TechnicianName}}</p>
  <p>Service date: {{.ServiceDate.Format "02 Jan 2006"}}</p>
  {{if .NextServiceDate}}<p>Next service due: {{.NextServiceDate.Format "02 Jan 2006"}}</p>{{end}}
  <p><strong>Description</strong><br>{{.Description}}</p>
  <p><strong>Findings</strong><br>{{.Findings}}</p>
  <p><strong>Recommendations</strong><br>{{.Recommendations}}</p>
  {{if .Photos}}
  <h3>Photos</h3>
  {{range .Photos}}
  <div style="margin-bottom: 12px;">
    <img src="{{.PhotoURL}}" alt="{{.Caption}}" style="max-width: 480px;"><br>
    {{if .Caption}}<em>{{.Caption}}</em>{{end}}
  </div>
  {{end}}
  {{end}}
</body>
</html>`))

// ReportMailer renders a service report and emails it to the fixed
// operator mailbox. One email per invocation, no retry.
type ReportMailer struct {
	db     *gorm.DB
	sender EmailSender
	to     string
}

func NewReportMailer(db *gorm.DB, sender EmailSender, to string) *ReportMailer {
	return &ReportMailer{db: db, sender: sender, to: to}
}

// Dispatch emails the report and, if it was still a draft, marks it
// completed. The status flip is best-effort: a failure there is logged
// and the email is still reported as sent. A provider failure leaves
// the report untouched.
func (m *ReportMailer) Dispatch(ctx context.Context, reportID uuid.UUID) (string, error) {
	if m.sender == nil {
		return "", errors.New("email sender not configured")
	}
	if m.to == "" {
		return "", errors.New("report mailbox not configured")
	}

	var report models.ServiceReport
	err := m.db.
		Preload("Customer").
		Preload("Photos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index ASC")
		}).
		First(&report, "id = ?", reportID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReportNotFound
		}
		return "", err
	}

	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, report); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	subject := fmt.Sprintf("Service Report - %s - %s",
		report.Customer.Name, report.ServiceDate.Format("02 Jan 2006"))

	emailID, err := m.sender.Send(ctx, m.to, subject, body.String())
	if err != nil {
		return "", fmt.Errorf("failed to send report email: %w", err)
	}

	if report.Status == models.ReportStatusDraft {
		if err := m.db.Model(&models.ServiceReport{}).
			Where("id = ? AND status = ?", report.ID, models.ReportStatusDraft).
			Update("status", models.ReportStatusCompleted).Error; err != nil {
			log.Printf("report %s: email sent but status update failed: %v", report.ID, err)
		}
	}

	return emailID, nil
}
