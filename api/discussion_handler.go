package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type discussionHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   DiscussionSubmitter
}

func newDiscussionHandler(service DiscussionSubmitter) discussionHandler {
	logger := log.With().Str("handlerName", "discussionHandler").Logger()

	return discussionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// ContactRequest is the short contact-form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// submitDiscussion handles the full project-discussion form.
func (h discussionHandler) submitDiscussion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var submission services.DiscussionSubmission
		if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode discussion request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		ack, err := h.service.Submit(r.Context(), submission)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ack)
	}
}

// submitContact handles the short contact form.
func (h discussionHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		ack, err := h.service.SubmitContact(r.Context(), contact.Name, contact.Email, contact.Message)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ack)
	}
}
