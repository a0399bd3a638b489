package qstash

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
)

const maxErrorBody = 4 << 10

type Config struct {
	URL               string        `split_words:"true" default:"https://qstash.upstash.io"`
	Token             string        `split_words:"true"`
	CurrentSigningKey string        `split_words:"true"`
	NextSigningKey    string        `split_words:"true"`
	Timeout           time.Duration `split_words:"true" default:"10s"`
}

// Enabled reports whether publishing is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Token) != ""
}

type Client struct {
	baseURL           string
	token             string
	currentSigningKey string
	nextSigningKey    string
	httpClient        *http.Client
}

type PublishResult struct {
	MessageID  string `json:"messageId,omitempty"`
	ScheduleID string `json:"scheduleId,omitempty"`
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		return nil, errors.New("qstash url is required")
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		token:             strings.TrimSpace(cfg.Token),
		currentSigningKey: strings.TrimSpace(cfg.CurrentSigningKey),
		nextSigningKey:    strings.TrimSpace(cfg.NextSigningKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	return client, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Publish enqueues one delivery of body to destination.
func (c *Client) Publish(ctx context.Context, destination string, body []byte, headers map[string]string) (PublishResult, error) {
	return c.post(ctx, "/v2/publish/", destination, body, headers)
}

// Schedule registers a cron schedule that calls destination with body.
func (c *Client) Schedule(ctx context.Context, destination, cron string, body []byte, headers map[string]string) (PublishResult, error) {
	cron = strings.TrimSpace(cron)
	if cron == "" {
		return PublishResult{}, errors.New("qstash: cron expression is required")
	}
	merged := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		merged[k] = v
	}
	merged["Upstash-Cron"] = cron
	return c.post(ctx, "/v2/schedules/", destination, body, merged)
}

func (c *Client) post(ctx context.Context, path, destination string, body []byte, headers map[string]string) (PublishResult, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return PublishResult{}, errors.New("qstash: destination is required")
	}
	if c.token == "" {
		return PublishResult{}, errors.New("qstash: token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+destination, bytes.NewReader(body))
	if err != nil {
		return PublishResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PublishResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return PublishResult{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PublishResult{}, fmt.Errorf("qstash: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out PublishResult
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return PublishResult{}, fmt.Errorf("qstash: decode response: %w", err)
		}
	}
	return out, nil
}
