package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Sentinel defaults used when optional fields are absent.
const (
	NotSpecified = "Not specified"
	NotProvided  = "Not provided"
	None         = "None"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DiscussionStore is the persistence leg of the pipeline.
type DiscussionStore interface {
	Add(request *models.DiscussionRequest) error
}

// NotificationSender is the dispatch leg of the pipeline.
type NotificationSender interface {
	Send(ctx context.Context, to, subject, templateName string, data map[string]string) error
}

// AlertSender delivers out-of-band alerts for urgent requests.
type AlertSender interface {
	SendAlert(ctx context.Context, body string) error
}

// DiscussionSubmission is the request payload for the submission endpoints.
type DiscussionSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`

	ProjectType    string   `json:"projectType"`
	Budget         string   `json:"budget,omitempty"`
	Timeline       string   `json:"timeline,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	Technologies   []string `json:"technologies,omitempty"`
	Features       []string `json:"features,omitempty"`

	Message           string `json:"message"`
	AdditionalDetails string `json:"additionalDetails,omitempty"`
	ContactPreference string `json:"contactPreference,omitempty"`
	Urgency           string `json:"urgency,omitempty"`
}

// SubmissionAck is returned to the caller on full success.
type SubmissionAck struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
	Success bool      `json:"success"`
}

// DiscussionService runs the submission pipeline: validate, persist,
// dispatch. Validation failures short-circuit before any side effect. A
// dispatch failure after the write is surfaced to the caller, but the
// persisted record is kept; the pipeline does not roll back.
type DiscussionService struct {
	store      DiscussionStore
	mailer     NotificationSender
	alerts     AlertSender
	ownerEmail string
	logger     zerolog.Logger
}

func NewDiscussionService(store DiscussionStore, mailer NotificationSender, alerts AlertSender, ownerEmail string) *DiscussionService {
	return &DiscussionService{
		store:      store,
		mailer:     mailer,
		alerts:     alerts,
		ownerEmail: ownerEmail,
		logger:     log.With().Str("serviceName", "discussionService").Logger(),
	}
}

// Submit runs the full project-discussion pipeline. Resubmission creates a
// new record; there is no deduplication.
func (s *DiscussionService) Submit(ctx context.Context, in DiscussionSubmission) (SubmissionAck, error) {
	if err := validateSubmission(in.Name, in.Email, in.ProjectType, in.Message); err != nil {
		return SubmissionAck{}, err
	}

	record := s.buildRecord(in)
	if err := s.store.Add(record); err != nil {
		return SubmissionAck{}, errs.NewDatabaseError("create", "discussion request", err)
	}

	data := notificationData(record)

	if err := s.mailer.Send(ctx, record.Email, "Thanks for reaching out!", TemplateThankYou, data); err != nil {
		s.logger.Error().Err(err).Str("recipient", record.Email).Msg("Failed to send thank-you notification")
		return SubmissionAck{}, errs.NewDispatchError(record.Email, err)
	}

	if err := s.mailer.Send(ctx, s.ownerEmail, "New project discussion request", TemplateDiscussionNotification, data); err != nil {
		s.logger.Error().Err(err).Str("recipient", s.ownerEmail).Msg("Failed to send owner notification")
		return SubmissionAck{}, errs.NewDispatchError(s.ownerEmail, err)
	}

	// Best effort: an SMS failure never fails a submission that has
	// already been persisted and mailed.
	if s.alerts != nil && (record.Urgency == "urgent" || record.Urgency == "high") {
		body := fmt.Sprintf("Urgent project request from %s (%s): %s", record.Name, record.Email, record.ProjectType)
		if err := s.alerts.SendAlert(ctx, body); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to send urgent SMS alert")
		}
	}

	return SubmissionAck{
		ID:      record.ID,
		Message: "Thanks! Your request has been received and a confirmation email is on its way.",
		Success: true,
	}, nil
}

// SubmitContact runs the short contact-form variant. The message is stored
// as a general-inquiry record and the owner gets the contact notification
// instead of the full discussion one.
func (s *DiscussionService) SubmitContact(ctx context.Context, name, email, message string) (SubmissionAck, error) {
	if err := validateSubmission(name, email, "General Inquiry", message); err != nil {
		return SubmissionAck{}, err
	}

	record := s.buildRecord(DiscussionSubmission{
		Name:        name,
		Email:       email,
		ProjectType: "General Inquiry",
		Message:     message,
	})
	if err := s.store.Add(record); err != nil {
		return SubmissionAck{}, errs.NewDatabaseError("create", "contact message", err)
	}

	data := notificationData(record)

	if err := s.mailer.Send(ctx, record.Email, "Thanks for reaching out!", TemplateThankYou, data); err != nil {
		s.logger.Error().Err(err).Str("recipient", record.Email).Msg("Failed to send thank-you notification")
		return SubmissionAck{}, errs.NewDispatchError(record.Email, err)
	}

	if err := s.mailer.Send(ctx, s.ownerEmail, "New contact message", TemplateContactNotification, data); err != nil {
		s.logger.Error().Err(err).Str("recipient", s.ownerEmail).Msg("Failed to send owner notification")
		return SubmissionAck{}, errs.NewDispatchError(s.ownerEmail, err)
	}

	return SubmissionAck{
		ID:      record.ID,
		Message: "Thanks! Your message has been received.",
		Success: true,
	}, nil
}

// validateSubmission enforces the required-field and email invariants.
// Both checks run before any side effect.
func validateSubmission(name, email, projectType, message string) error {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(email) == "" ||
		strings.TrimSpace(projectType) == "" ||
		strings.TrimSpace(message) == "" {
		return errs.BadRequest("Missing required fields")
	}
	if !emailPattern.MatchString(email) {
		return errs.NewInvalidFieldError("email", "must be a valid email address")
	}
	return nil
}

func (s *DiscussionService) buildRecord(in DiscussionSubmission) *models.DiscussionRequest {
	return &models.DiscussionRequest{
		ID:                uuid.New(),
		Name:              in.Name,
		Email:             in.Email,
		Company:           orDefault(in.Company, NotProvided),
		Phone:             orDefault(in.Phone, NotProvided),
		ProjectType:       in.ProjectType,
		Budget:            orDefault(in.Budget, NotSpecified),
		Timeline:          orDefault(in.Timeline, NotSpecified),
		TargetAudience:    orDefault(in.TargetAudience, NotSpecified),
		Technologies:      datatypes.NewJSONSlice(in.Technologies),
		Features:          datatypes.NewJSONSlice(in.Features),
		Message:           in.Message,
		AdditionalDetails: orDefault(in.AdditionalDetails, None),
		ContactPreference: orDefault(in.ContactPreference, "email"),
		Urgency:           orDefault(in.Urgency, "normal"),
		CreatedAt:         time.Now().UTC(),
	}
}

func notificationData(record *models.DiscussionRequest) map[string]string {
	return map[string]string{
		"name":              record.Name,
		"email":             record.Email,
		"company":           record.Company,
		"phone":             record.Phone,
		"projectType":       record.ProjectType,
		"budget":            record.Budget,
		"timeline":          record.Timeline,
		"targetAudience":    record.TargetAudience,
		"technologies":      joinOrDefault(record.Technologies, None),
		"features":          joinOrDefault(record.Features, None),
		"message":           record.Message,
		"additionalDetails": record.AdditionalDetails,
		"contactPreference": record.ContactPreference,
		"urgency":           record.Urgency,
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
