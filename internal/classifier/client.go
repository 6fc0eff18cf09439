// Package classifier is the HTTP client for the external breed-scoring
// service. It exposes the four endpoints the service offers and maps its
// failure modes onto stable sentinel errors.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const (
	// MaxBodyBytes caps both the uploaded image and the scorer's response.
	MaxBodyBytes = 10 << 20

	healthTimeout  = 5 * time.Second
	predictTimeout = 30 * time.Second
	lookupTimeout  = 10 * time.Second
)

var (
	// ErrUnavailable means the scoring service could not be reached at all.
	ErrUnavailable = errors.New("classification service unavailable")
	// ErrBadImage means the scorer rejected the image as unprocessable.
	ErrBadImage = errors.New("classification service rejected the image")
	// ErrUpstream means the scorer was reachable but failed to classify.
	ErrUpstream = errors.New("classification service failed")
	// ErrNotFound means the scorer has no such resource (unknown breed).
	ErrNotFound = errors.New("classification service has no such resource")
)

// BreedInfo is the classifier-supplied breed metadata.
type BreedInfo struct {
	Description     string   `json:"description,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
	Origin          string   `json:"origin,omitempty"`
}

// PredictResult is the parsed body of a successful POST /predict call.
type PredictResult struct {
	Prediction     string     `json:"prediction"`
	Confidence     float64    `json:"confidence"`
	ProcessingTime float64    `json:"processing_time"`
	BreedInfo      *BreedInfo `json:"breed_info,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// Client talks to the scoring service. The zero value is not usable, use
// NewClient.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a classifier client for the given base URL. The shared
// http.Client carries no timeout of its own; every call sets a per-request
// deadline via context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
	}
}

// Health probes GET /health. Any transport error or non-200 status maps to
// ErrUnavailable so callers can fail fast before attempting a real call.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health probe returned status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Predict submits the image as a multipart body and parses the structured
// response. The response body is capped at MaxBodyBytes.
func (c *Client) Predict(ctx context.Context, filename, contentType string, image io.Reader) (*PredictResult, error) {
	ctx, cancel := context.WithTimeout(ctx, predictTimeout)
	defer cancel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreatePart(imagePartHeader(filename, contentType))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(image, MaxBodyBytes)); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: status %d", ErrBadImage, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var result PredictResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUpstream, err)
	}
	// The scorer reports some failures inside an otherwise-200 body.
	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, result.Error)
	}
	if result.Prediction == "" {
		return nil, fmt.Errorf("%w: response carries no prediction", ErrUpstream)
	}
	return &result, nil
}

// Breeds fetches the list of breed labels the scorer knows.
func (c *Client) Breeds(ctx context.Context) ([]string, error) {
	var payload struct {
		Breeds []string `json:"breeds"`
	}
	if err := c.getJSON(ctx, "/breeds", &payload); err != nil {
		return nil, err
	}
	return payload.Breeds, nil
}

// BreedInfoByName fetches the metadata object for one breed. An unknown
// breed surfaces as ErrNotFound.
func (c *Client) BreedInfoByName(ctx context.Context, name string) (*BreedInfo, error) {
	var info BreedInfo
	if err := c.getJSON(ctx, "/breed-info/"+url.PathEscape(name), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: GET %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s returned status %d", ErrUpstream, path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: malformed response for GET %s: %v", ErrUpstream, path, err)
	}
	return nil
}

func imagePartHeader(filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return h
}
