package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type fakeModel struct {
	response *llms.ContentResponse
	err      error
	received []llms.MessageContent
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.received = messages
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

type fakeCatalog struct {
	projects []*models.Project
	err      error
}

func (c *fakeCatalog) FindEnabled() ([]*models.Project, error) {
	return c.projects, c.err
}

func modelReply(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func TestReplyEmptyMessage(t *testing.T) {
	service := NewChatService(&fakeModel{}, &fakeCatalog{})

	_, err := service.Reply(context.Background(), "   ")
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestReplyHappyPath(t *testing.T) {
	llm := &fakeModel{response: modelReply("He built this site with Go.")}
	service := NewChatService(llm, &fakeCatalog{})

	reply, err := service.Reply(context.Background(), "What is this site built with?")
	require.NoError(t, err)
	assert.Equal(t, "He built this site with Go.", reply)

	require.Len(t, llm.received, 2, "system prompt plus the user turn")
}

func TestReplyAbsorbsUpstreamErrors(t *testing.T) {
	llm := &fakeModel{err: errors.New("rate limited")}
	service := NewChatService(llm, &fakeCatalog{})

	reply, err := service.Reply(context.Background(), "hello")
	require.NoError(t, err, "upstream failures must not surface")
	assert.Equal(t, FallbackReply, reply)
}

func TestReplyFallsBackOnEmptyChoices(t *testing.T) {
	llm := &fakeModel{response: &llms.ContentResponse{}}
	service := NewChatService(llm, &fakeCatalog{})

	reply, err := service.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestReplyFallsBackOnBlankContent(t *testing.T) {
	llm := &fakeModel{response: modelReply("  \n ")}
	service := NewChatService(llm, &fakeCatalog{})

	reply, err := service.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestReplyWithoutModel(t *testing.T) {
	service := NewChatService(nil, &fakeCatalog{})

	reply, err := service.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestSystemPromptIncludesCatalog(t *testing.T) {
	project := &models.Project{
		Title:       "Portfolio Site",
		Description: "This very site",
		Tags:        []models.ProjectTag{{Value: "Go"}},
	}
	llm := &fakeModel{response: modelReply("sure")}
	service := NewChatService(llm, &fakeCatalog{projects: []*models.Project{project}})

	_, err := service.Reply(context.Background(), "tell me about your projects")
	require.NoError(t, err)

	require.NotEmpty(t, llm.received)
	system := llm.received[0]
	require.Len(t, system.Parts, 1)
	text, ok := system.Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Portfolio Site")
	assert.Contains(t, text.Text, "Go")
}

func TestSystemPromptDegradesOnCatalogError(t *testing.T) {
	llm := &fakeModel{response: modelReply("sure")}
	service := NewChatService(llm, &fakeCatalog{err: errors.New("db down")})

	reply, err := service.Reply(context.Background(), "hello")
	require.NoError(t, err, "a catalog failure only degrades the prompt")
	assert.Equal(t, "sure", reply)
}

func TestFilterReply(t *testing.T) {
	raw := "start\nHere is the answer.\nstop\nAnd a second line."
	assert.Equal(t, "Here is the answer.\nAnd a second line.", filterReply(raw))

	assert.Equal(t, "plain text", filterReply("plain text"))
	assert.Equal(t, "", filterReply("start\nstop"))
}

func TestReplyFiltersControlMarkers(t *testing.T) {
	llm := &fakeModel{response: modelReply("START\nThe real reply.")}
	service := NewChatService(llm, &fakeCatalog{})

	reply, err := service.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "The real reply.", reply)
}
