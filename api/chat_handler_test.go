package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type staticCatalog struct{}

func (staticCatalog) FindEnabled() ([]*models.Project, error) {
	return nil, nil
}

func TestChatEmptyMessage(t *testing.T) {
	handler := newChatHandler(services.NewChatService(nil, staticCatalog{}))

	rec := postJSON(t, handler.chat(), "/chat", `{"message": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatMalformedBody(t *testing.T) {
	handler := newChatHandler(services.NewChatService(nil, staticCatalog{}))

	rec := postJSON(t, handler.chat(), "/chat", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatUnconfiguredModelFallsBack(t *testing.T) {
	handler := newChatHandler(services.NewChatService(nil, staticCatalog{}))

	rec := postJSON(t, handler.chat(), "/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, services.FallbackReply, response.Reply)
}

type fixedReplier struct {
	reply string
	err   error
}

func (r fixedReplier) Reply(ctx context.Context, message string) (string, error) {
	return r.reply, r.err
}

func TestChatReturnsReply(t *testing.T) {
	handler := newChatHandler(fixedReplier{reply: "Built with Go."})

	rec := postJSON(t, handler.chat(), "/chat", `{"message": "what stack?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Built with Go.", response.Reply)
}
