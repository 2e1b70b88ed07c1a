package platform_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Client - HTTP-клиент управляемой платформы. Реализует все порты удаленных сервисов.
type Client struct {
	baseURL    string // Например, "https://platform.example.com"
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest добавляет к запросу trace_id и bearer-токен текущего пользователя.
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if identity := contextkeys.IdentityFromContext(ctx); identity.Token != "" {
		req.Header.Set("Authorization", "Bearer "+identity.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// call выполняет запрос operation и декодирует ответ в out (если out != nil).
// Ответ не 2xx превращается в *domain.RemoteError.
func (c *Client) call(ctx context.Context, operation, method, path string, query url.Values, in, out any) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "PlatformClient",
		"method":    operation,
	})

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		reqBody, err := json.Marshal(in)
		if err != nil {
			clientLogger.Error("Failed to marshal request body", err, nil)
			return fmt.Errorf("failed to marshal %s request: %w", operation, err)
		}
		body = bytes.NewReader(reqBody)
	}

	clientLogger.Debug("Sending request to platform", port.Fields{"url": target})
	start := time.Now()

	resp, err := c.doRequest(ctx, method, target, body)
	if err != nil {
		clientLogger.Error("Failed to perform request to platform", err, nil)
		return fmt.Errorf("platform %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remoteErr := readRemoteError(operation, resp)
		clientLogger.Warn("Received error response from platform", port.Fields{
			"status_code": resp.StatusCode,
			"message":     remoteErr.Message,
		})
		return remoteErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			clientLogger.Error("Failed to decode response from platform", err, nil)
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
	}

	clientLogger.Debug("Platform request finished", port.Fields{
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// readRemoteError достает {"message": "..."} из тела ошибки. Если тело не JSON,
// сообщением становится сам текст.
func readRemoteError(operation string, resp *http.Response) *domain.RemoteError {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	remoteErr := &domain.RemoteError{Operation: operation, StatusCode: resp.StatusCode}

	var parsed errorResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err == nil && parsed.Message != "" {
		remoteErr.Message = parsed.Message
		return remoteErr
	}
	remoteErr.Message = strings.TrimSpace(string(bodyBytes))
	return remoteErr
}

func isNotFound(err error) bool {
	var remoteErr *domain.RemoteError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound
}
