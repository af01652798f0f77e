// Package gemini adapts the Google Gemini API to the chat.Generator
// interface.
package gemini

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/vkazakov/repetitor/internal/chat"
	"github.com/vkazakov/repetitor/internal/errors"
	"github.com/vkazakov/repetitor/internal/logger"
)

// Client wraps a genai client configured for the Gemini API backend.
type Client struct {
	client *genai.Client
	log    *slog.Logger
	now    func() time.Time
}

// APIKey returns the configured API key, checking GEMINI_API_KEY first and
// falling back to API_KEY.
func APIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}

// New creates a Client using the API key from the environment.
func New(ctx context.Context) (*Client, error) {
	const op = errors.Op("gemini.New")

	key := APIKey()
	if key == "" {
		return nil, errors.E(op, errors.KindConfig, "GEMINI_API_KEY is not set")
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.E(op, errors.KindConfig, "failed to create Gemini client", err)
	}

	return &Client{
		client: c,
		log:    logger.ComponentLogger("Gemini"),
		now:    time.Now,
	}, nil
}

// Generate sends the full session history to the model and returns its reply.
// An empty model response becomes a polite fallback instead of an error.
func (c *Client) Generate(ctx context.Context, model string, history []chat.Turn, mode chat.Mode, difficulty chat.Difficulty) (string, error) {
	contents := c.buildContents(history)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(mode, difficulty, c.now()), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](40),
	}

	c.log.Debug("generating reply", "model", model, "turns", len(history), "mode", mode)
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", errors.GenerateFailed(model, err)
	}

	text := resp.Text()
	if text == "" {
		c.log.Warn("model returned no text", "model", model)
		return fallbackReply, nil
	}
	return text, nil
}

// buildContents converts session turns to the wire format. Assistant turns
// map to the model role; attachments become inline data parts alongside the
// text.
func (c *Client) buildContents(history []chat.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == chat.RoleAssistant {
			role = genai.RoleModel
		}

		parts := []*genai.Part{{Text: turn.Content}}
		for _, att := range turn.Attachments {
			data, err := base64.StdEncoding.DecodeString(att.Data)
			if err != nil {
				c.log.Warn("skipping undecodable attachment", "name", att.Name, "error", err)
				continue
			}
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: att.MIMEType, Data: data},
			})
		}

		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents
}
