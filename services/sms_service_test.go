package services

import (
	"errors"
	"testing"
	"time"

	"fieldserve-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	receipt *SMSReceipt
	err     error

	calls    int
	lastTo   string
	lastBody string
}

func (f *fakeProvider) Send(to, body string) (*SMSReceipt, error) {
	f.calls++
	f.lastTo = to
	f.lastBody = body
	return f.receipt, f.err
}

func TestSendCustomRecordsSentNotification(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{receipt: &SMSReceipt{SID: "SM123", Accepted: true}}
	svc := NewSMSService(db, provider)

	customerID := uuid.New()
	notification, err := svc.SendCustom(customerID, nil, "+14155552671", "Your part has arrived.")
	require.NoError(t, err)

	assert.Equal(t, models.SMSStatusSent, notification.Status)
	assert.Equal(t, "+14155552671", notification.Phone)
	assert.Equal(t, "Your part has arrived.", notification.Message)
	assert.Equal(t, customerID, notification.CustomerID)
	assert.Nil(t, notification.ReportID)
	assert.False(t, notification.SentAt.IsZero())

	assert.EqualValues(t, 1, notificationCount(t, db))
	assert.Equal(t, 1, provider.calls)
}

func TestSendCustomRecordsProviderRejection(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{receipt: &SMSReceipt{Accepted: false, ProviderError: "unreachable destination"}}
	svc := NewSMSService(db, provider)

	notification, err := svc.SendCustom(uuid.New(), nil, "+14155552671", "hello")
	require.NoError(t, err)

	// A rejection that reached the provider is a tracked failure
	assert.Equal(t, models.SMSStatusFailed, notification.Status)
	assert.EqualValues(t, 1, notificationCount(t, db))
}

func TestSendCustomTransportErrorLeavesNoRow(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{err: errors.New("connection refused")}
	svc := NewSMSService(db, provider)

	_, err := svc.SendCustom(uuid.New(), nil, "+14155552671", "hello")
	require.Error(t, err)

	assert.EqualValues(t, 0, notificationCount(t, db))
}

func TestSendCustomValidationFailsBeforeProvider(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{receipt: &SMSReceipt{Accepted: true}}
	svc := NewSMSService(db, provider)

	_, err := svc.SendCustom(uuid.New(), nil, "not-a-phone", "hello")
	require.Error(t, err)

	_, err = svc.SendCustom(uuid.New(), nil, "+14155552671", "   ")
	require.Error(t, err)

	assert.Equal(t, 0, provider.calls)
	assert.EqualValues(t, 0, notificationCount(t, db))
}

func TestSendCustomWithoutProvider(t *testing.T) {
	db := newTestDB(t)
	svc := NewSMSService(db, nil)

	_, err := svc.SendCustom(uuid.New(), nil, "+14155552671", "hello")
	require.Error(t, err)
	assert.EqualValues(t, 0, notificationCount(t, db))
}

func TestSendDueDateReminderComposesMessage(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{receipt: &SMSReceipt{Accepted: true}}
	svc := NewSMSService(db, provider)

	reportID := uuid.New()
	due := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	notification, err := svc.SendDueDateReminder(uuid.New(), &reportID, "+14155552671", "Dana", due)
	require.NoError(t, err)

	assert.Contains(t, provider.lastBody, "Hi Dana")
	assert.Contains(t, provider.lastBody, "20 Jul 2025")
	require.NotNil(t, notification.ReportID)
	assert.Equal(t, reportID, *notification.ReportID)
}
