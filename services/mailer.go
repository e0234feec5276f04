package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Notification template names. The set is fixed; asking for anything else
// is a programming error, not user input.
const (
	TemplateThankYou               = "thank-you"
	TemplateContactNotification    = "contact-notification"
	TemplateDiscussionNotification = "project-discussion-notification"
)

const resendEndpoint = "https://api.resend.com/emails"

// html/template is deliberate here: context values come straight from form
// submissions, so interpolation must escape them.
var notificationTemplates = map[string]*template.Template{
	TemplateThankYou: template.Must(template.New(TemplateThankYou).Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>Thanks for reaching out, {{.name}}!</h2>
  <p>I received your message about <strong>{{.projectType}}</strong> and will get back to you within one business day.</p>
  <p>Here is a copy of what you sent:</p>
  <blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #555;">{{.message}}</blockquote>
  <p>Talk soon,<br>Ronan</p>
</div>`)),

	TemplateContactNotification: template.Must(template.New(TemplateContactNotification).Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>New contact message</h2>
  <p><strong>From:</strong> {{.name}} ({{.email}})</p>
  <p><strong>Message:</strong></p>
  <blockquote style="border-left: 3px solid #ccc; padding-left: 12px;">{{.message}}</blockquote>
</div>`)),

	TemplateDiscussionNotification: template.Must(template.New(TemplateDiscussionNotification).Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>New project discussion request</h2>
  <table cellpadding="4">
    <tr><td><strong>Name</strong></td><td>{{.name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.email}}</td></tr>
    <tr><td><strong>Phone</strong></td><td>{{.phone}}</td></tr>
    <tr><td><strong>Company</strong></td><td>{{.company}}</td></tr>
    <tr><td><strong>Project type</strong></td><td>{{.projectType}}</td></tr>
    <tr><td><strong>Budget</strong></td><td>{{.budget}}</td></tr>
    <tr><td><strong>Timeline</strong></td><td>{{.timeline}}</td></tr>
    <tr><td><strong>Target audience</strong></td><td>{{.targetAudience}}</td></tr>
    <tr><td><strong>Technologies</strong></td><td>{{.technologies}}</td></tr>
    <tr><td><strong>Features</strong></td><td>{{.features}}</td></tr>
    <tr><td><strong>Contact preference</strong></td><td>{{.contactPreference}}</td></tr>
    <tr><td><strong>Urgency</strong></td><td>{{.urgency}}</td></tr>
  </table>
  <p><strong>Message:</strong></p>
  <blockquote style="border-left: 3px solid #ccc; padding-left: 12px;">{{.message}}</blockquote>
  <p><strong>Additional details:</strong> {{.additionalDetails}}</p>
</div>`)),
}

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer renders one of the fixed notification templates and submits it
// through the Resend API. One outbound call per Send; no retry, no queue.
//
// Requires environment variables:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: sender address (e.g. "Ronan <hello@example.com>")
type Mailer struct {
	apiKey    string
	fromEmail string
	endpoint  string
	client    *http.Client
	logger    zerolog.Logger
}

func NewMailer(cfg map[string]string) *Mailer {
	return &Mailer{
		apiKey:    config.GetString(cfg, "RESEND_API_KEY", ""),
		fromEmail: config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    log.With().Str("serviceName", "mailer").Logger(),
	}
}

// Send renders templateName with data and mails it to a single recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, templateName string, data map[string]string) error {
	tmpl, ok := notificationTemplates[templateName]
	if !ok {
		return errs.NewUnknownTemplateError(templateName)
	}

	if m.apiKey == "" || m.fromEmail == "" {
		return errs.NewTransportError("RESEND_API_KEY and RESEND_FROM_EMAIL must be configured", nil)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errs.NewInternalErrorWithCause("failed to render notification template", err)
	}

	payload := ResendEmailRequest{
		From:    m.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to marshal email payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return errs.NewTransportError("failed to create Resend API request", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errs.NewTransportError("failed to reach Resend API", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewTransportError("failed to read Resend API response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return errs.NewTransportError(fmt.Sprintf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message), nil)
		}
		return errs.NewTransportError(fmt.Sprintf("resend API error (status %d)", resp.StatusCode), nil)
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		m.logger.Info().Str("emailId", emailResponse.ID).Str("template", templateName).Msg("Successfully sent email via Resend")
	}

	return nil
}
