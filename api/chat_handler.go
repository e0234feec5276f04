package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

type chatHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   ChatReplier
}

func newChatHandler(service ChatReplier) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// ChatRequest is a single visitor message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h chatHandler) chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode chat request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		reply, err := h.service.Reply(r.Context(), request.Message)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ChatResponse{Reply: reply})
	}
}
