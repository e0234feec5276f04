package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// SMSNotifier sends short alerts to the owner's phone through Twilio.
// When any of the Twilio settings is missing the notifier is disabled and
// SendAlert becomes a logged no-op, so SMS stays an optional feature.
//
// Requires environment variables:
//   - TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN: Twilio credentials
//   - TWILIO_FROM_NUMBER: sending number in E.164 format
//   - OWNER_PHONE_NUMBER: destination number in E.164 format
type SMSNotifier struct {
	client  *twilio.RestClient
	from    string
	to      string
	enabled bool
	logger  zerolog.Logger
}

func NewSMSNotifier(cfg map[string]string) *SMSNotifier {
	logger := log.With().Str("serviceName", "smsNotifier").Logger()

	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	to := config.GetString(cfg, "OWNER_PHONE_NUMBER", "")

	if sid == "" || token == "" || from == "" || to == "" {
		logger.Warn().Msg("Twilio not fully configured, SMS alerts disabled")
		return &SMSNotifier{enabled: false, logger: logger}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})

	return &SMSNotifier{
		client:  client,
		from:    from,
		to:      to,
		enabled: true,
		logger:  logger,
	}
}

// SendAlert delivers one SMS to the owner.
func (n *SMSNotifier) SendAlert(ctx context.Context, body string) error {
	if !n.enabled {
		n.logger.Debug().Msg("SMS alerts disabled, dropping alert")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return errs.NewTransportError("failed to send SMS via Twilio", err)
	}

	if resp.Sid != nil {
		n.logger.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS alert")
	}
	return nil
}
