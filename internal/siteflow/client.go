// Package siteflow implements the client for the Siteflow REST API: the
// credential/session lifecycle and one method per remote endpoint. Every
// call is a single stateless round trip; the cached bearer token is the
// only state shared across calls
package siteflow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/siteflow-tools/siteflow-mcp/internal/config"
	"github.com/siteflow-tools/siteflow-mcp/pkg/api"
	"github.com/siteflow-tools/siteflow-mcp/pkg/log"
)

// Client talks to the Siteflow API on behalf of a single configured
// project. It owns the cached bearer token; the mutex guards the
// read-check-refresh cycle so concurrent tool calls never race it
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	projectID    api.ProjectID
	familyID     api.FamilyID
	leeway       time.Duration
	maxAttempts  int
	httpClient   *http.Client
	logger       *slog.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
}

const (
	apiPrefix = "/ext/api/2.0"
	authPath  = apiPrefix + "/authenticate"

	contentTypeJSON = "application/json"
	userAgent       = "siteflow-mcp/0.1.0"
)

// New constructs a client from a validated configuration
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:      cfg.ServerURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		projectID:    cfg.ProjectID,
		familyID:     cfg.FamilyID,
		leeway:       cfg.TokenLeeway,
		maxAttempts:  cfg.MaxAttempts,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// ProjectID returns the project the client is configured for
func (c *Client) ProjectID() api.ProjectID {
	return c.projectID
}

// GetFlows lists flows for the configured project
func (c *Client) GetFlows(ctx context.Context) (any, error) {
	query := url.Values{"projectId": []string{string(c.projectID)}}
	return c.call(ctx, http.MethodGet, apiPrefix+"/flows", query, nil)
}

// GetFlowPhases lists the phases of a flow
func (c *Client) GetFlowPhases(
	ctx context.Context, flowID api.FlowID,
) (any, error) {
	path := apiPrefix + "/flows/" + url.PathEscape(string(flowID)) +
		"/phases"
	return c.call(ctx, http.MethodGet, path, nil, nil)
}

// CreateFlow creates a flow record. A configured family ID is applied
// when the caller did not supply one
func (c *Client) CreateFlow(
	ctx context.Context, create api.FlowCreate,
) (any, error) {
	if create.FlowProperties.FamilyIdentifier == "" {
		create.FlowProperties.FamilyIdentifier = c.familyID
	}
	return c.call(ctx, http.MethodPost, apiPrefix+"/flows/bulk-create",
		nil, api.Envelope[api.FlowCreate]{
			Data: []api.FlowCreate{create},
		})
}

// AddPhase creates a phase under a flow
func (c *Client) AddPhase(
	ctx context.Context, flowID api.FlowID, phase api.PhaseCreate,
) (any, error) {
	path := apiPrefix + "/flows/" + url.PathEscape(string(flowID)) +
		"/add-phases"
	return c.call(ctx, http.MethodPost, path, nil,
		api.Envelope[api.PhaseCreate]{
			Data: []api.PhaseCreate{phase},
		})
}

// AddStep creates a step under a phase. Steps without an explicit block
// list get the INSTRUCTION block
func (c *Client) AddStep(
	ctx context.Context, phaseID api.PhaseID, step api.StepCreate,
) (any, error) {
	if len(step.ManagementProperties.ListEnabledThematicBlocks) == 0 {
		step.ManagementProperties.ListEnabledThematicBlocks =
			api.DefaultThematicBlocks
	}
	path := apiPrefix + "/phases/" + url.PathEscape(string(phaseID)) +
		"/add-steps"
	return c.call(ctx, http.MethodPost, path, nil,
		api.Envelope[api.StepCreate]{
			Data: []api.StepCreate{step},
		})
}

// UpdateStepText replaces the text block of a step
func (c *Client) UpdateStepText(
	ctx context.Context, stepID api.StepID, text string,
) (any, error) {
	path := apiPrefix + "/steps/" + url.PathEscape(string(stepID)) +
		"/update-text-block"
	return c.call(ctx, http.MethodPatch, path, nil,
		api.TextUpdate{Data: text})
}

// call performs a single authenticated round trip and returns the decoded
// response body as received
func (c *Client) call(
	ctx context.Context, method, path string, query url.Values,
	payload any,
) (any, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	requestID := uuid.NewString()
	start := time.Now()
	resp, err := c.roundTrip(ctx, method, target, body, token)
	if err != nil {
		c.logger.Error("Siteflow request failed",
			log.RequestID(requestID),
			slog.String("method", method),
			slog.String("path", path),
			log.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Siteflow request completed",
		log.RequestID(requestID),
		slog.String("method", method),
		slog.String("path", path),
		log.Status(resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < http.StatusOK ||
		resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("Siteflow API error",
			log.RequestID(requestID),
			slog.String("method", method),
			slog.String("path", path),
			log.Status(resp.StatusCode),
			log.ErrorString(string(respBody)))
		return nil, &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	if resp.StatusCode == http.StatusNoContent ||
		len(bytes.TrimSpace(respBody)) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// roundTrip sends one request, retrying transport-level failures with
// bounded exponential backoff. HTTP responses are never retried: remote
// errors pass through to the caller verbatim
func (c *Client) roundTrip(
	ctx context.Context, method, target string, body []byte, token string,
) (*http.Response, error) {
	var resp *http.Response
	op := func() error {
		req, err := http.NewRequestWithContext(
			ctx, method, target, bytes.NewReader(body),
		)
		if err != nil {
			return backoff.Permanent(err)
		}
		c.setHeaders(req, token)

		r, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			uint64(c.maxAttempts-1),
		),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
