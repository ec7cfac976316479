// Package pitchapi adapts a remote pitch-tracking service to the
// PitchAnalyzer port.
package pitchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/ports"
)

const (
	tracePath      = "/v1/pitch"
	uploadField    = "audio"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// Config describes how to reach the service. TokenURL enables OAuth2 client
// credentials; without it requests are sent unauthenticated.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// MaxAttempts and Backoff tune retries; zero selects the defaults.
	MaxAttempts int
	Backoff     time.Duration
}

// Client is an HTTP client for the remote pitch analyzer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      retryPolicy
}

// compile-time interface assertion
var _ ports.PitchAnalyzer = (*Client)(nil)

// NewClient constructs a Client. base, when non-nil, is the transport used
// for both token and API calls.
func NewClient(cfg Config, base *http.Client) *Client {
	if base == nil {
		base = &http.Client{Timeout: defaultTimeout}
	}
	httpClient := base
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = cc.Client(ctx)
		httpClient.Timeout = base.Timeout
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		retry:      retryPolicy{attempts: cfg.MaxAttempts, backoff: cfg.Backoff}.normalized(),
	}
}

type traceResponse struct {
	Frequencies []float64 `json:"frequencies"`
	Times       []float64 `json:"times"`
}

// PitchTrace uploads the recording and returns the service's trace.
func (c *Client) PitchTrace(ctx context.Context, upload domain.Upload) (domain.PitchTrace, error) {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return domain.PitchTrace{}, fmt.Errorf("pitchapi: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tracePath, bytes.NewReader(body))
	if err != nil {
		return domain.PitchTrace{}, fmt.Errorf("pitchapi: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return domain.PitchTrace{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.PitchTrace{}, fmt.Errorf("pitchapi: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var tr traceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&tr); err != nil {
		return domain.PitchTrace{}, fmt.Errorf("pitchapi: decode trace: %w", err)
	}
	if len(tr.Frequencies) != len(tr.Times) {
		return domain.PitchTrace{}, fmt.Errorf("pitchapi: trace has %d frequencies but %d times", len(tr.Frequencies), len(tr.Times))
	}
	if tr.Frequencies == nil {
		tr.Frequencies, tr.Times = []float64{}, []float64{}
	}
	return domain.PitchTrace{Frequencies: tr.Frequencies, Times: tr.Times}, nil
}

func encodeUpload(upload domain.Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	name := upload.Filename
	if name == "" {
		name = "recording"
	}
	part, err := mw.CreateFormFile(uploadField, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}
