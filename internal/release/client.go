package release

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"shipway/internal/config"
	"shipway/internal/logging"
)

// HTTPDoer describes the HTTP client used by the release service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Release is the API's release resource.
type Release struct {
	ID      int64  `json:"id"`
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// Approval is one approval record attached to a pipeline run.
type Approval struct {
	Approver string `json:"approver"`
	State    string `json:"state"`
	Comment  string `json:"comment"`
}

// Service defines the release-hosting operations shipway uses.
type Service interface {
	// EnsureRelease creates the release for the announcement's tag, or
	// updates the existing one when the tag already has a release.
	EnsureRelease(ctx context.Context, ann Announcement) (Release, error)
	// Approvals fetches the approval records for a pipeline run.
	Approvals(ctx context.Context, runID string) ([]Approval, error)
}

type client struct {
	baseURL string
	project string
	token   string
	http    HTTPDoer
	logger  *slog.Logger
}

// NewClient builds a Service from configuration. The doer may be nil, in
// which case a client with the configured timeout is used.
func NewClient(cfg *config.Config, doer HTTPDoer, logger *slog.Logger) Service {
	if doer == nil {
		doer = &http.Client{Timeout: time.Duration(cfg.Release.RequestTimeout) * time.Second}
	}
	return &client{
		baseURL: cfg.Release.BaseURL,
		project: cfg.Release.Project,
		token:   cfg.Release.APIToken,
		http:    doer,
		logger:  logging.NewComponentLogger(logger, "release"),
	}
}

func (c *client) EnsureRelease(ctx context.Context, ann Announcement) (Release, error) {
	existing, found, err := c.releaseByTag(ctx, ann.Tag)
	if err != nil {
		return Release{}, err
	}

	payload := map[string]string{
		"tag_name": ann.Tag,
		"name":     ann.Name,
		"body":     ann.Body,
	}

	if found {
		updated, err := c.writeRelease(ctx, http.MethodPatch,
			fmt.Sprintf("%s/projects/%s/releases/%d", c.baseURL, url.PathEscape(c.project), existing.ID), payload)
		if err != nil {
			return Release{}, err
		}
		c.logger.Info("updated release",
			logging.String(logging.FieldEventType, "release_updated"),
			logging.String("tag", ann.Tag))
		return updated, nil
	}

	created, err := c.writeRelease(ctx, http.MethodPost,
		fmt.Sprintf("%s/projects/%s/releases", c.baseURL, url.PathEscape(c.project)), payload)
	if err != nil {
		return Release{}, err
	}
	c.logger.Info("created release",
		logging.String(logging.FieldEventType, "release_created"),
		logging.String("tag", ann.Tag))
	return created, nil
}

func (c *client) Approvals(ctx context.Context, runID string) ([]Approval, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/runs/%s/approvals",
		c.baseURL, url.PathEscape(c.project), url.PathEscape(runID))
	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch approvals: api returned %d", status)
	}
	var approvals []Approval
	if err := json.Unmarshal(body, &approvals); err != nil {
		return nil, fmt.Errorf("decode approvals: %w", err)
	}
	return approvals, nil
}

func (c *client) releaseByTag(ctx context.Context, tag string) (Release, bool, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/releases/tags/%s",
		c.baseURL, url.PathEscape(c.project), url.PathEscape(tag))
	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Release{}, false, err
	}
	switch status {
	case http.StatusOK:
		var rel Release
		if err := json.Unmarshal(body, &rel); err != nil {
			return Release{}, false, fmt.Errorf("decode release: %w", err)
		}
		return rel, true, nil
	case http.StatusNotFound:
		return Release{}, false, nil
	default:
		return Release{}, false, fmt.Errorf("look up release for tag %q: api returned %d", tag, status)
	}
}

func (c *client) writeRelease(ctx context.Context, method, endpoint string, payload map[string]string) (Release, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Release{}, fmt.Errorf("encode release payload: %w", err)
	}
	body, status, err := c.do(ctx, method, endpoint, encoded)
	if err != nil {
		return Release{}, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return Release{}, fmt.Errorf("write release: api returned %d", status)
	}
	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return Release{}, fmt.Errorf("decode release: %w", err)
	}
	return rel, nil
}

func (c *client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("call release api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return data, resp.StatusCode, nil
}
