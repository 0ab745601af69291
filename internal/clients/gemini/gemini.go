// Package gemini адаптер генеративной модели Gemini для AI-фасада.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xr_archive/internal/domain/models"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

var ErrNoAPIKey = errors.New("gemini api key is empty")

type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func New(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	const op = "clients.gemini.New"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoAPIKey)
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate отправляет один текстовый запрос и возвращает текст ответа
func (c *Client) Generate(ctx context.Context, prompt string, opts models.GenerateOptions) (string, error) {
	const op = "clients.gemini.Generate"

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), generateConfig(opts))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return resp.Text(), nil
}

func generateConfig(opts models.GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
	}

	if opts.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toSchema(opts.Schema)
	}

	return cfg
}

func toSchema(s *models.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:     genai.Type(s.Type),
		Items:    toSchema(s.Items),
		Required: s.Required,
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toSchema(p)
		}
	}

	return out
}
