package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/prompt"
)

type GeminiClient struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger zerolog.Logger) (*GeminiClient, error) {
	return newGeminiClient(ctx, cfg, genai.HTTPOptions{}, logger)
}

func newGeminiClient(ctx context.Context, cfg config.GeminiConfig, httpOptions genai.HTTPOptions, logger zerolog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, newConfigError(fmt.Errorf("missing GEMINI_API_KEY"))
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  cfg.Model,
		logger: logger.With().Str("component", "gemini").Logger(),
	}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) Complete(ctx context.Context, conv prompt.Conversation) (string, error) {
	contents := make([]*genai.Content, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		if m.Role == prompt.RoleUser {
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		TopP:            genai.Ptr[float32](topP),
		MaxOutputTokens: int32(conv.MaxTokens),
	}
	if system := conv.System(); system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return "", c.classify(err)
	}

	text := ""
	if res != nil {
		text = strings.TrimSpace(res.Text())
	}
	if text == "" {
		c.logger.Warn().Str("model", c.model).Msg("gemini returned empty response")
		return "", newResponseError("Model returned empty response")
	}
	return text, nil
}

func (c *GeminiClient) classify(err error) error {
	if code, ok := apiErrorCode(err); ok {
		c.logger.Warn().Int("status", code).Err(err).Str("model", c.model).Msg("gemini API error")
		switch code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return newAuthError("Gemini API key is invalid or expired.")
		case http.StatusServiceUnavailable:
			return newResponseError("The AI model is currently loading. Please try again in a few moments.")
		default:
			return newResponseError(fmt.Sprintf("Gemini API error: %s", err.Error()))
		}
	}
	if isTimeout(err) {
		c.logger.Warn().Err(err).Str("model", c.model).Msg("gemini request timed out")
		return newTimeoutError("Request to Gemini API timed out. Please try again.", err)
	}
	c.logger.Warn().Err(err).Str("model", c.model).Msg("gemini network error")
	return newNetworkError("Network error while calling Gemini API. Please try again.", err)
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
