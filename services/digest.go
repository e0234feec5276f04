package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// DigestStore is the read side the digest is built from.
type DigestStore interface {
	FindSince(cutoff time.Time) ([]*models.DiscussionRequest, error)
}

// DigestService mails the owner a summary of discussion requests received
// in the last 24 hours. Scheduled from main via cron; quiet days send
// nothing.
type DigestService struct {
	store      DigestStore
	mailer     NotificationSender
	ownerEmail string
	logger     zerolog.Logger
}

func NewDigestService(store DigestStore, mailer NotificationSender, ownerEmail string) *DigestService {
	return &DigestService{
		store:      store,
		mailer:     mailer,
		ownerEmail: ownerEmail,
		logger:     log.With().Str("serviceName", "digestService").Logger(),
	}
}

// SendDaily builds and sends the daily summary.
func (s *DigestService) SendDaily(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	requests, err := s.store.FindSince(cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load requests for daily digest")
		return err
	}

	if len(requests) == 0 {
		s.logger.Info().Msg("No new discussion requests, skipping daily digest")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d new request(s) in the last 24 hours:\n", len(requests))
	for _, r := range requests {
		fmt.Fprintf(&b, "- %s (%s), %s, urgency %s\n", r.Name, r.Email, r.ProjectType, r.Urgency)
	}

	data := map[string]string{
		"name":    "Daily digest",
		"email":   s.ownerEmail,
		"message": b.String(),
	}

	subject := fmt.Sprintf("Portfolio digest: %d new request(s)", len(requests))
	if err := s.mailer.Send(ctx, s.ownerEmail, subject, TemplateContactNotification, data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to send daily digest")
		return err
	}

	s.logger.Info().Int("requests", len(requests)).Msg("Sent daily digest")
	return nil
}
