package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type fakeStore struct {
	records []*models.DiscussionRequest
	err     error
}

func (s *fakeStore) Add(request *models.DiscussionRequest) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, request)
	return nil
}

type sentMail struct {
	to       string
	subject  string
	template string
	data     map[string]string
}

type spyMailer struct {
	sent    []sentMail
	failFor map[string]error // keyed by template name
}

func (m *spyMailer) Send(ctx context.Context, to, subject, templateName string, data map[string]string) error {
	if err, ok := m.failFor[templateName]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{to, subject, templateName, data})
	return nil
}

type spyAlerts struct {
	bodies []string
	err    error
}

func (a *spyAlerts) SendAlert(ctx context.Context, body string) error {
	if a.err != nil {
		return a.err
	}
	a.bodies = append(a.bodies, body)
	return nil
}

func validSubmission() DiscussionSubmission {
	return DiscussionSubmission{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		ProjectType:  "Web Application",
		Message:      "I need a storefront.",
		Technologies: []string{"ReactJS", "PostgreSQL"},
	}
}

func TestSubmitHappyPath(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	ack, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.NotEmpty(t, ack.ID)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.Equal(t, ack.ID, record.ID)
	assert.Equal(t, NotProvided, record.Company, "absent optional fields get defaults")
	assert.Equal(t, NotSpecified, record.Budget)
	assert.Equal(t, "normal", record.Urgency)
	assert.Equal(t, "email", record.ContactPreference)

	// Thank-you to the submitter first, then the owner notification.
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "ada@example.com", mailer.sent[0].to)
	assert.Equal(t, TemplateThankYou, mailer.sent[0].template)
	assert.Equal(t, "owner@example.com", mailer.sent[1].to)
	assert.Equal(t, TemplateDiscussionNotification, mailer.sent[1].template)
}

func TestSubmitValidationShortCircuits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DiscussionSubmission)
	}{
		{"missing name", func(s *DiscussionSubmission) { s.Name = " " }},
		{"missing email", func(s *DiscussionSubmission) { s.Email = "" }},
		{"missing project type", func(s *DiscussionSubmission) { s.ProjectType = "" }},
		{"missing message", func(s *DiscussionSubmission) { s.Message = "\t" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			mailer := &spyMailer{}
			service := NewDiscussionService(store, mailer, nil, "owner@example.com")

			in := validSubmission()
			tc.mutate(&in)

			_, err := service.Submit(context.Background(), in)
			require.Error(t, err)

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.StatusCode)

			assert.Empty(t, store.records, "validation failure must not persist")
			assert.Empty(t, mailer.sent, "validation failure must not send")
		})
	}
}

func TestSubmitRejectsMalformedEmail(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	in := validSubmission()
	in.Email = "not-an-email"

	_, err := service.Submit(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFieldError(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email", apiErr.Field)

	assert.Empty(t, store.records)
	assert.Empty(t, mailer.sent)
}

func TestSubmitDispatchFailureKeepsRecord(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{failFor: map[string]error{
		TemplateThankYou: errors.New("resend unavailable"),
	}}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	_, err := service.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	assert.True(t, errs.IsDispatchError(err))

	// The write is not rolled back on a dispatch failure.
	assert.Len(t, store.records, 1)
}

func TestSubmitOwnerDispatchFailureAfterThankYou(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{failFor: map[string]error{
		TemplateDiscussionNotification: errors.New("resend unavailable"),
	}}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	_, err := service.Submit(context.Background(), validSubmission())
	require.Error(t, err)

	assert.Len(t, store.records, 1)
	require.Len(t, mailer.sent, 1, "thank-you already went out")
	assert.Equal(t, TemplateThankYou, mailer.sent[0].template)
}

func TestSubmitStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	mailer := &spyMailer{}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	_, err := service.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	assert.Empty(t, mailer.sent, "nothing is sent when the write fails")
}

func TestSubmitUrgentTriggersAlert(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	alerts := &spyAlerts{}
	service := NewDiscussionService(store, mailer, alerts, "owner@example.com")

	in := validSubmission()
	in.Urgency = "urgent"

	ack, err := service.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, ack.Success)
	require.Len(t, alerts.bodies, 1)
	assert.Contains(t, alerts.bodies[0], "Ada Lovelace")
}

func TestSubmitAlertFailureIsBestEffort(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	alerts := &spyAlerts{err: errors.New("twilio down")}
	service := NewDiscussionService(store, mailer, alerts, "owner@example.com")

	in := validSubmission()
	in.Urgency = "high"

	ack, err := service.Submit(context.Background(), in)
	require.NoError(t, err, "a failed SMS never fails the submission")
	assert.True(t, ack.Success)
}

func TestSubmitNormalUrgencySkipsAlert(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	alerts := &spyAlerts{}
	service := NewDiscussionService(store, mailer, alerts, "owner@example.com")

	_, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Empty(t, alerts.bodies)
}

func TestSubmitContact(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	ack, err := service.SubmitContact(context.Background(), "Ada", "ada@example.com", "Hi there")
	require.NoError(t, err)
	assert.True(t, ack.Success)

	require.Len(t, store.records, 1)
	assert.Equal(t, "General Inquiry", store.records[0].ProjectType)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, TemplateThankYou, mailer.sent[0].template)
	assert.Equal(t, TemplateContactNotification, mailer.sent[1].template)
}

func TestSubmitContactValidation(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	_, err := service.SubmitContact(context.Background(), "Ada", "ada@example.com", "")
	require.Error(t, err)
	assert.Empty(t, store.records)
	assert.Empty(t, mailer.sent)
}

func TestResubmissionCreatesNewRecord(t *testing.T) {
	store := &fakeStore{}
	mailer := &spyMailer{}
	service := NewDiscussionService(store, mailer, nil, "owner@example.com")

	first, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	second, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.records, 2)
}
