package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the remote question-answering service.
type Client struct {
	base   string
	client *http.Client
	logger *zap.Logger
}

// New validates the configuration and returns a ready Client.
func New(cfg Config) (*Client, error) {
	base, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   base,
		client: pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger: logger.Named("backend"),
	}, nil
}

// BaseURL reports the normalized backend address.
func (c *Client) BaseURL() string {
	return c.base
}

// NewRequestID returns a fresh identifier for a QueryRequest.
func NewRequestID() string {
	return uuid.NewString()
}

type queryResponse struct {
	Status string `json:"status"`
	Answer string `json:"answer"`
	Detail string `json:"detail"`
}

// Query uploads the document with the question and returns the backend's answer.
// Failures are *TransportError or *ApplicationError.
func (c *Client) Query(ctx context.Context, req QueryRequest) (string, error) {
	body, contentType, err := encodeQuery(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+queryPath, body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if req.ID != "" {
		httpReq.Header.Set("X-Request-ID", req.ID)
	}

	started := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("query transport failure",
			zap.String("request_id", req.ID),
			zap.Duration("duration", time.Since(started)),
			zap.Error(err))
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Info("query response",
		zap.String("request_id", req.ID),
		zap.String("file", req.FileName),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("%w: %v", errMalformedPayload, err)}
	}
	var parsed queryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &TransportError{Err: fmt.Errorf("%w: %v", errMalformedPayload, err)}
	}
	if parsed.Status != StatusSuccess {
		return "", &ApplicationError{Status: parsed.Status, Detail: parsed.Detail}
	}
	return parsed.Answer, nil
}

func encodeQuery(req QueryRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("question", req.Question); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// Health probes the backend root. Any 2xx response counts as reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+healthPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("health probe failed", zap.Error(err))
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("health probe rejected", zap.Int("status", resp.StatusCode))
		return &TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	c.logger.Info("health probe ok", zap.String("base", c.base))
	return nil
}
