// OpenAI 호환 chat completions 엔드포인트(Hugging Face router 등)와 통신하는 클라이언트
//
// 환경변수:
//   - HUGGINGFACE_API_TOKEN: Bearer 토큰 (hf_...)
//   - HUGGINGFACE_API_URL: chat completions URL
//   - HUGGINGFACE_MODEL: 모델 ID
//   - HUGGINGFACE_TIMEOUT, HUGGINGFACE_MAX_RETRIES
//
// 연결 오류, 429, 5xx 응답은 재시도한 뒤 마지막 응답을 기준으로 오류를 분류한다.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/logging"
	"github.com/kiddoland/backend/internal/prompt"
)

const (
	temperature = 0.7
	topP        = 0.9

	maxResponseSize = 10 * 1024 * 1024
	maxErrorDetail  = 200
)

type HuggingFaceClient struct {
	apiURL     string
	model      string
	timeout    time.Duration
	retry      *retryablehttp.Client
	httpClient *http.Client
	logger     zerolog.Logger
}

type chatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []prompt.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	TopP        float64          `json:"top_p"`
	MaxTokens   int              `json:"max_tokens"`
	Stream      bool             `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewHuggingFaceClient(cfg config.HuggingFaceConfig, logger zerolog.Logger) (*HuggingFaceClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, newConfigError(err)
	}

	retry := retryablehttp.NewClient()
	retry.RetryMax = cfg.MaxRetries
	retry.RetryWaitMin = 500 * time.Millisecond
	retry.RetryWaitMax = 5 * time.Second
	retry.HTTPClient.Timeout = cfg.Timeout
	retry.Logger = logging.NewRetryLogger(logger)
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken, TokenType: "Bearer"})

	return &HuggingFaceClient{
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		retry:   retry,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{
				Source: tokenSource,
				Base:   &retryablehttp.RoundTripper{Client: retry},
			},
		},
		logger: logger.With().Str("component", "huggingface").Logger(),
	}, nil
}

// Model returns the configured model id.
func (c *HuggingFaceClient) Model() string {
	return c.model
}

// Complete sends conv to the endpoint. The configured timeout bounds the whole call,
// retries included.
func (c *HuggingFaceClient) Complete(ctx context.Context, conv prompt.Conversation) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    conv.Messages,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   conv.MaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn().Err(err).Str("model", c.model).Msg("inference request timed out")
			return "", newTimeoutError("Request to Hugging Face API timed out. Please try again.", err)
		}
		c.logger.Warn().Err(err).Str("model", c.model).Msg("inference network error")
		return "", newNetworkError("Network error while calling Hugging Face API. Please try again.", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if isTimeout(err) {
			return "", newTimeoutError("Request to Hugging Face API timed out. Please try again.", err)
		}
		return "", newNetworkError("Network error while calling Hugging Face API. Please try again.", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.Warn().Int("status", resp.StatusCode).Str("model", c.model).Msg("inference auth failed")
		return "", newAuthError("Hugging Face token is invalid or expired.")
	case resp.StatusCode == http.StatusServiceUnavailable:
		c.logger.Warn().Str("model", c.model).Msg("inference model unavailable")
		return "", newResponseError("The AI model is currently loading. Please try again in a few moments.")
	case resp.StatusCode != http.StatusOK:
		detail := errorDetail(body)
		c.logger.Warn().Int("status", resp.StatusCode).Str("detail", truncate(detail, maxErrorDetail)).Str("model", c.model).Msg("inference API error")
		return "", newResponseError(fmt.Sprintf("Hugging Face API error: %s", detail))
	}

	if !json.Valid(body) {
		c.logger.Warn().Str("model", c.model).Msg("inference returned non-JSON response")
		return "", newResponseError("Hugging Face API returned a non-JSON response")
	}

	var completion chatCompletionResponse
	text := ""
	if err := json.Unmarshal(body, &completion); err == nil && len(completion.Choices) > 0 {
		text = strings.TrimSpace(completion.Choices[0].Message.Content)
	}
	if text == "" {
		c.logger.Warn().Str("model", c.model).Msg("inference returned empty response")
		return "", newResponseError("Model returned empty response")
	}

	return text, nil
}

// errorDetail extracts the upstream "error" field, falling back to the raw body.
func errorDetail(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		switch v := payload["error"].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		case nil:
		default:
			return fmt.Sprintf("%v", v)
		}
		return "Unknown error"
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return "Unknown error"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
