package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// FallbackReply is returned whenever the upstream model call fails or
// produces nothing usable. Upstream detail is absorbed, never propagated.
const FallbackReply = "Sorry, I'm having trouble answering right now. Please try again in a moment, or reach out through the contact form."

const chatCallTimeout = 20 * time.Second

// ProjectCatalog supplies the live project data the system prompt is
// rebuilt from on every turn.
type ProjectCatalog interface {
	FindEnabled() ([]*models.Project, error)
}

// ChatService proxies a single user message to the LLM. No conversation
// history is kept server-side; each turn sends only the current message
// plus a freshly generated system prompt.
type ChatService struct {
	llm     llms.Model
	catalog ProjectCatalog
	logger  zerolog.Logger
}

func NewChatService(llm llms.Model, catalog ProjectCatalog) *ChatService {
	return &ChatService{
		llm:     llm,
		catalog: catalog,
		logger:  log.With().Str("serviceName", "chatService").Logger(),
	}
}

// NewChatModel builds the LLM client from configuration.
//
// Requires environment variables:
//   - OPENAI_API_KEY: API key for the completion endpoint
//   - CHAT_MODEL: optional model override (default gpt-4o-mini)
func NewChatModel(cfg map[string]string) (llms.Model, error) {
	apiKey := config.GetString(cfg, "OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("OPENAI_API_KEY")
	}
	model := config.GetString(cfg, "CHAT_MODEL", "gpt-4o-mini")
	return openai.New(openai.WithToken(apiKey), openai.WithModel(model))
}

// Reply forwards message to the model and returns the first candidate's
// text. Empty input is the only client error; every upstream failure is
// absorbed into FallbackReply.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errs.BadRequest("message is required")
	}

	// No model configured, answer with the fallback only
	if s.llm == nil {
		return FallbackReply, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, chatCallTimeout)
	defer cancel()

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, s.systemPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, message),
	}

	resp, err := s.llm.GenerateContent(callCtx, content, llms.WithMaxTokens(512))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Upstream model call failed, using fallback reply")
		return FallbackReply, nil
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		s.logger.Warn().Msg("Upstream model returned no candidates, using fallback reply")
		return FallbackReply, nil
	}

	return filterReply(resp.Choices[0].Content), nil
}

// systemPrompt is regenerated on every turn from the live project catalog.
// Catalog read failures degrade to a prompt without project context.
func (s *ChatService) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are the assistant on Ronan's portfolio website. ")
	b.WriteString("Answer questions about his projects, skills and availability. ")
	b.WriteString("Be concise and friendly. If asked about hiring or project work, point visitors to the contact form.\n")

	projects, err := s.catalog.FindEnabled()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load projects for system prompt")
		return b.String()
	}

	if len(projects) > 0 {
		b.WriteString("\nCurrent projects:\n")
		for _, p := range projects {
			fmt.Fprintf(&b, "- %s: %s (tech: %s)\n", p.Title, p.Description, strings.Join(p.TagValues(), ", "))
		}
	}
	return b.String()
}

// filterReply drops control-marker lines the model occasionally echoes.
func filterReply(reply string) string {
	lines := strings.Split(reply, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(trimmed, "start") || strings.HasPrefix(trimmed, "stop") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
