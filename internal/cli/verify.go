package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kiddoland/backend/internal/logging"
	"github.com/kiddoland/backend/internal/model"
)

const previewChars = 200

type verifyOptions struct {
	baseURL  string
	email    string
	password string
	mode     string
	prompt   string
	age      int
	timeout  time.Duration
}

// VerifyCmd logs in to a running server and generates one story.
func VerifyCmd() *cobra.Command {
	opts := verifyOptions{}

	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "Smoke-test a running server (login, then generate a story)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "http://127.0.0.1:8000", "API base URL")
	cmd.Flags().StringVar(&opts.email, "email", "parent@kiddoland.local", "login email")
	cmd.Flags().StringVar(&opts.password, "password", "Parent123!", "login password")
	cmd.Flags().StringVar(&opts.mode, "mode", model.ModeHome, "login mode")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "Write a short story about a friendly robot", "story prompt")
	cmd.Flags().IntVar(&opts.age, "age", 8, "reader age")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "per-request timeout")

	return cmd
}

func runVerify(ctx context.Context, opts verifyOptions, out io.Writer) error {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 1
	httpClient.HTTPClient.Timeout = opts.timeout
	httpClient.Logger = logging.NewRetryLogger(zerolog.Nop())
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	baseURL := strings.TrimRight(opts.baseURL, "/")

	var token model.TokenResponse
	login := model.LoginRequest{Email: opts.email, Password: opts.password, Mode: opts.mode}
	if err := postJSON(ctx, httpClient, baseURL+"/auth/login", "", login, &token); err != nil {
		return err
	}
	if token.AccessToken == "" {
		return errors.New("login succeeded but no access token was returned")
	}

	var story model.StoryResponse
	req := model.StoryRequest{Age: opts.age, Prompt: opts.prompt}
	if err := postJSON(ctx, httpClient, baseURL+"/story/generate", token.AccessToken, req, &story); err != nil {
		return err
	}
	text := strings.TrimSpace(story.Story)
	if text == "" {
		return errors.New("story generation succeeded but returned empty content")
	}

	preview := []rune(text)
	if len(preview) > previewChars {
		preview = preview[:previewChars]
	}
	fmt.Fprintln(out, "Story generation OK.")
	fmt.Fprintf(out, "Story length: %d chars\n", len([]rune(text)))
	return json.NewEncoder(out).Encode(map[string]string{"preview": string(preview)})
}

func postJSON(ctx context.Context, c *retryablehttp.Client, url, token string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("non-JSON response from %s: %w", url, err)
	}
	return nil
}
