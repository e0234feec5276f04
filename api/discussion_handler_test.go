package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type recordingStore struct {
	records []*models.DiscussionRequest
}

func (s *recordingStore) Add(request *models.DiscussionRequest) error {
	s.records = append(s.records, request)
	return nil
}

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) Send(ctx context.Context, to, subject, templateName string, data map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

func newTestDiscussionHandler(store *recordingStore, mailer *stubMailer) discussionHandler {
	service := services.NewDiscussionService(store, mailer, nil, "owner@example.com")
	return newDiscussionHandler(service)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSubmitDiscussionSuccess(t *testing.T) {
	store := &recordingStore{}
	handler := newTestDiscussionHandler(store, &stubMailer{})

	body := `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"projectType": "Web Application",
		"message": "I need a storefront.",
		"technologies": ["ReactJS"]
	}`
	rec := postJSON(t, handler.submitDiscussion(), "/project-discussion", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var ack services.SubmissionAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.True(t, ack.Success)
	assert.NotEmpty(t, ack.ID)

	require.Len(t, store.records, 1)
	assert.Equal(t, ack.ID, store.records[0].ID)
}

func TestSubmitDiscussionInvalidEmail(t *testing.T) {
	store := &recordingStore{}
	handler := newTestDiscussionHandler(store, &stubMailer{})

	body := `{
		"name": "Ada",
		"email": "not-an-email",
		"projectType": "Web Application",
		"message": "Hi"
	}`
	rec := postJSON(t, handler.submitDiscussion(), "/project-discussion", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
	assert.Empty(t, store.records, "invalid submissions never persist")
}

func TestSubmitDiscussionMissingFields(t *testing.T) {
	store := &recordingStore{}
	handler := newTestDiscussionHandler(store, &stubMailer{})

	rec := postJSON(t, handler.submitDiscussion(), "/project-discussion", `{"name": "Ada"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.records)
}

func TestSubmitDiscussionMalformedJSON(t *testing.T) {
	store := &recordingStore{}
	handler := newTestDiscussionHandler(store, &stubMailer{})

	rec := postJSON(t, handler.submitDiscussion(), "/project-discussion", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.records)
}

func TestSubmitDiscussionMailFailureAfterPersist(t *testing.T) {
	store := &recordingStore{}
	handler := newTestDiscussionHandler(store, &stubMailer{err: errors.New("resend down")})

	body := `{
		"name": "Ada",
		"email": "ada@example.com",
		"projectType": "Web Application",
		"message": "Hi"
	}`
	rec := postJSON(t, handler.submitDiscussion(), "/project-discussion", body)

	// Dispatch failure surfaces as a server error, but the record stays.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.Len(t, store.records, 1)
}

func TestSubmitContactSuccess(t *testing.T) {
	store := &recordingStore{}
	mailer := &stubMailer{}
	handler := newTestDiscussionHandler(store, mailer)

	body := `{"name": "Ada", "email": "ada@example.com", "message": "Hello"}`
	rec := postJSON(t, handler.submitContact(), "/contact", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var ack services.SubmissionAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.True(t, ack.Success)

	require.Len(t, store.records, 1)
	assert.Equal(t, "General Inquiry", store.records[0].ProjectType)
	assert.Equal(t, 2, mailer.sent)
}

func TestSubmitContactMissingMessage(t *testing.T) {
	store := &recordingStore{}
	handler := newTestDiscussionHandler(store, &stubMailer{})

	rec := postJSON(t, handler.submitContact(), "/contact", `{"name": "Ada", "email": "ada@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.records)
}
