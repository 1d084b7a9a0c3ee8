// Package weather предоставляет клиент для API прогноза погоды OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured возвращается, если ключ API не задан на сервере.
var ErrNotConfigured = errors.New("weather API key is not configured")

// UpstreamError описывает ошибку, полученную от вышестоящего API:
// статус пробрасывается клиенту вместе с сообщением.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather upstream status %d: %s", e.StatusCode, e.Message)
}

// Client инкапсулирует HTTP-взаимодействие с OpenWeatherMap.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт клиент прогноза погоды с указанным адресом API и ключом.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Forecast запрашивает пятидневный прогноз для города и возвращает
// ответ вышестоящего API как есть. Ошибки вышестоящего API приходят
// как *UpstreamError с его статусом.
func (c *Client) Forecast(ctx context.Context, city string) (json.RawMessage, error) {
	if c == nil || c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "pt_br")

	reqURL := fmt.Sprintf("%s/data/2.5/forecast?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("malformed forecast response")
	}

	return json.RawMessage(body), nil
}

// OpenWeatherMap отдаёт ошибки в виде {"cod": "...", "message": "..."}.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "failed to fetch weather forecast"
}
