// Package client provides test commands for the grimoire HTTP API
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

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

var (
	// Connection flags
	serverURL  string
	healthAddr string
	authToken  string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the grimoire API",
	Long:  `Client commands allow you to exercise a running grimoire API with real HTTP requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "HTTP API base URL")
	ClientCmd.PersistentFlags().StringVar(&healthAddr, "health-addr", "localhost:50051", "gRPC health address")
	ClientCmd.PersistentFlags().StringVar(&authToken, "token", "", "bearer token for character commands")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Library commands
	ClientCmd.AddCommand(healthCmd)
	ClientCmd.AddCommand(listClassesCmd)
	ClientCmd.AddCommand(getClassCmd)
	ClientCmd.AddCommand(listSpellsCmd)

	// Character commands
	ClientCmd.AddCommand(createCharacterCmd)
	ClientCmd.AddCommand(listCharactersCmd)
	ClientCmd.AddCommand(learnSpellsCmd)
	ClientCmd.AddCommand(getGrimoireCmd)
}

// apiError is the error envelope the API writes.
type apiError struct {
	Error struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		RequestID string         `json:"request_id"`
		Details   map[string]any `json:"details"`
	} `json:"error"`
}

// apiClient is a thin JSON client for the HTTP API
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(serverURL, "/"),
		token:   authToken,
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends body as JSON and decodes a 2xx response into out. Error envelopes
// come back as *errors.Error carrying the server's code.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope apiError
		if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Code == "" {
			return errors.Newf(errors.CodeInternal, "unexpected status %d", resp.StatusCode)
		}
		apiErr := errors.New(errors.Code(envelope.Error.Code), envelope.Error.Message)
		if envelope.Error.RequestID != "" {
			apiErr = apiErr.WithMeta("request_id", envelope.Error.RequestID)
		}
		for key, value := range envelope.Error.Details {
			apiErr = apiErr.WithMeta(key, value)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func requireToken() error {
	if authToken == "" {
		return errors.InvalidArgument("--token is required for character commands")
	}
	return nil
}
