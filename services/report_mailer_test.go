package services

import (
	"context"
	"errors"
	"testing"

	"fieldserve-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	emailID string
	err     error

	calls       int
	lastTo      string
	lastSubject string
	lastBody    string
}

func (f *fakeSender) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	f.calls++
	f.lastTo = to
	f.lastSubject = subject
	f.lastBody = htmlBody
	if f.err != nil {
		return "", f.err
	}
	return f.emailID, nil
}

func TestDispatchSendsAndCompletesDraft(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "+14155552671")
	report := seedReport(t, db, customer.ID, models.ReportStatusDraft, nil)

	photo := models.ReportPhoto{
		ReportID:   report.ID,
		PhotoURL:   "http://localhost:8080/uploads/reports/p1.jpg",
		StorageKey: "p1.jpg",
		OrderIndex: 0,
		Caption:    "Compressor housing",
	}
	require.NoError(t, db.Create(&photo).Error)

	sender := &fakeSender{emailID: "ses-msg-1"}
	mailer := NewReportMailer(db, sender, "ops@fieldserve.example")

	emailID, err := mailer.Dispatch(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, "ses-msg-1", emailID)

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "ops@fieldserve.example", sender.lastTo)
	assert.Contains(t, sender.lastSubject, customer.Name)
	assert.Contains(t, sender.lastBody, "Compressor running hot")
	assert.Contains(t, sender.lastBody, "http://localhost:8080/uploads/reports/p1.jpg")
	assert.Contains(t, sender.lastBody, "Compressor housing")

	var updated models.ServiceReport
	require.NoError(t, db.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusCompleted, updated.Status)
}

func TestDispatchProviderFailureLeavesStatusUnchanged(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "")
	report := seedReport(t, db, customer.ID, models.ReportStatusDraft, nil)

	sender := &fakeSender{err: errors.New("ses throttled")}
	mailer := NewReportMailer(db, sender, "ops@fieldserve.example")

	_, err := mailer.Dispatch(context.Background(), report.ID)
	require.Error(t, err)

	var unchanged models.ServiceReport
	require.NoError(t, db.First(&unchanged, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusDraft, unchanged.Status)
}

func TestDispatchCompletedReportStaysCompleted(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "")
	report := seedReport(t, db, customer.ID, models.ReportStatusCompleted, nil)

	sender := &fakeSender{emailID: "ses-msg-2"}
	mailer := NewReportMailer(db, sender, "ops@fieldserve.example")

	emailID, err := mailer.Dispatch(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, "ses-msg-2", emailID)
	assert.Equal(t, 1, sender.calls)

	var after models.ServiceReport
	require.NoError(t, db.First(&after, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusCompleted, after.Status)
}

func TestDispatchUnknownReport(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{emailID: "ses-msg-3"}
	mailer := NewReportMailer(db, sender, "ops@fieldserve.example")

	_, err := mailer.Dispatch(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrReportNotFound)
	assert.Equal(t, 0, sender.calls)
}

func TestDispatchWithoutSender(t *testing.T) {
	db := newTestDB(t)
	mailer := NewReportMailer(db, nil, "ops@fieldserve.example")

	_, err := mailer.Dispatch(context.Background(), uuid.New())
	require.Error(t, err)
}
