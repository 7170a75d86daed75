package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/logger"
	reportmodels "letscheck-client/internal/features/report/models"
	"letscheck-client/internal/features/verification/models"
)

const (
	verifyPath  = "/api/v1/verifications/verify/hash"
	reportsPath = "/api/v1/verifications/reports"

	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
)

// Client talks to the verification backend. It keeps a cookie jar and
// mirrors the csrftoken cookie into the X-CSRFToken header the way the
// web client does.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

// EnsureCSRF primes the cookie jar with a GET on the site root, mimicking
// the page load that hands the browser its csrftoken. Best effort: when the
// backend sets no cookie, POSTs simply go out without the header.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	if c.csrfToken() != "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to prime csrf cookie: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if c.csrfToken() == "" {
		logger.Debug().Msg("backend set no csrftoken cookie, continuing without header")
	}
	return nil
}

func (c *Client) csrfToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// VerifyHash submits a document hash for verification and normalizes the
// response. The returned result always carries the client-known hash: the
// backend is authoritative on the verdict, the client on the identity of
// what it asked about.
func (c *Client) VerifyHash(ctx context.Context, hash models.DocumentHash, method models.VerificationMethod) (*models.VerificationResult, error) {
	resp, err := c.postJSON(ctx, verifyPath, models.VerifyRequest{
		DocumentHash: hash,
		Method:       method,
	})
	if err != nil {
		return nil, commonerrors.NewVerifyFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, commonerrors.NewVerifyFailed(fmt.Errorf("verify failed with status: %d", resp.StatusCode)).
			WithDetail("status", resp.StatusCode)
	}

	var result models.VerificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, commonerrors.NewVerifyFailed(fmt.Errorf("failed to decode response: %w", err))
	}

	result.DocumentHash = hash
	return &result, nil
}

// SubmitReport files an abuse report. Any 2xx response is success; the body
// is ignored.
func (c *Client) SubmitReport(ctx context.Context, draft reportmodels.Draft) error {
	resp, err := c.postJSON(ctx, reportsPath, draft)
	if err != nil {
		return commonerrors.NewReportFailed(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return commonerrors.NewReportFailed(fmt.Errorf("report failed with status: %d", resp.StatusCode)).
			WithDetail("status", resp.StatusCode)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.csrfToken(); token != "" {
		req.Header.Set(csrfHeaderName, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
