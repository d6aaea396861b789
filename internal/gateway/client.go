package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"taqueando-console/internal/session"
)

func init() {
	// The backend reads amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Config holds the connection settings of the backend API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client performs one request/response round trip per call against the
// Taqueando backend. It never caches and never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    *session.Session
	logger     *logrus.Logger
}

// NewClient creates a client bound to sess. The token is read from sess on
// every call.
func NewClient(cfg Config, sess *session.Session, logger *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		session:    sess,
		logger:     logger,
	}
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	// auth makes the call fail before any request when no usable token is held.
	auth bool
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	requestID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     req.method,
		"path":       req.path,
	})

	token, tokenErr := c.session.Token()
	if req.auth && tokenErr != nil {
		log.WithError(tokenErr).Warn("request needs authentication")
		return tokenErr
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("error marshalling request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if tokenErr == nil {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithError(err).Error("request failed")
		return fmt.Errorf("error calling %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusNotFound {
			log.WithField("status", resp.StatusCode).Debug(apiErr.Message)
		} else {
			log.WithField("status", resp.StatusCode).Error(apiErr.Message)
		}
		return apiErr
	}

	log.WithField("status", resp.StatusCode).Debug("request completed")

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error unmarshalling response of %s: %w", req.path, err)
	}
	return nil
}
