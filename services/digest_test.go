package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type fakeDigestStore struct {
	requests []*models.DiscussionRequest
	err      error
	cutoff   time.Time
}

func (s *fakeDigestStore) FindSince(cutoff time.Time) ([]*models.DiscussionRequest, error) {
	s.cutoff = cutoff
	return s.requests, s.err
}

func TestSendDailySkipsQuietDays(t *testing.T) {
	store := &fakeDigestStore{}
	mailer := &spyMailer{}
	service := NewDigestService(store, mailer, "owner@example.com")

	require.NoError(t, service.SendDaily(context.Background()))
	assert.Empty(t, mailer.sent)

	assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), store.cutoff, time.Minute)
}

func TestSendDailySummarizesRequests(t *testing.T) {
	store := &fakeDigestStore{requests: []*models.DiscussionRequest{
		{Name: "Ada", Email: "ada@example.com", ProjectType: "Web Application", Urgency: "normal"},
		{Name: "Grace", Email: "grace@example.com", ProjectType: "AI / ML Project", Urgency: "urgent"},
	}}
	mailer := &spyMailer{}
	service := NewDigestService(store, mailer, "owner@example.com")

	require.NoError(t, service.SendDaily(context.Background()))

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "owner@example.com", sent.to)
	assert.Contains(t, sent.subject, "2 new request(s)")
	assert.Contains(t, sent.data["message"], "Ada")
	assert.Contains(t, sent.data["message"], "Grace")
}

func TestSendDailyStoreError(t *testing.T) {
	store := &fakeDigestStore{err: errors.New("db down")}
	mailer := &spyMailer{}
	service := NewDigestService(store, mailer, "owner@example.com")

	require.Error(t, service.SendDaily(context.Background()))
	assert.Empty(t, mailer.sent)
}
