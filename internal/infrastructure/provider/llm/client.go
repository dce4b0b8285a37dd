// Package llm implements the natural-language event search provider on top
// of the OpenAI chat completion API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"courtside/internal/ports"
)

const searchPrompt = `You are a Hong Kong sports event search assistant. List real upcoming
sports events matching the user's query. Format each event as a numbered item
with labeled lines, for example:

1. **Victoria Park Tennis Open**
- **Date:** 2026-10-12
- **Time:** 09:00 - 17:00
- **Location:** Victoria Park, Causeway Bay
- **Sport:** tennis
- **Category:** competition
- **Skill Level:** intermediate
- **Description:** Annual open hard-court tournament.

Only list events in Hong Kong. If unsure of a detail, omit that line.`

type Client struct {
	client openai.Client
	model  openai.ChatModel
}

var _ ports.EventTextProvider = (*Client)(nil)

func NewClient(apiKey, model string) *Client {
	m := openai.ChatModelGPT4oMini
	if model != "" {
		m = openai.ChatModel(model)
	}
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

// SearchEvents asks the model for matching events and returns the raw text
// blob for the ingest parser. Failures come back as ErrProviderUnavailable
// so the orchestrator degrades to fallback data.
func (c *Client) SearchEvents(ctx context.Context, query string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(searchPrompt),
			openai.UserMessage(query),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrProviderUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ports.ErrProviderUnavailable)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: blank completion", ports.ErrProviderUnavailable)
	}
	return content, nil
}
