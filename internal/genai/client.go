package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// defaultTimeout bounds a single API call when no custom HTTP client is
// provided. Image synthesis is slow, so this is deliberately generous.
const defaultTimeout = 120 * time.Second

// Client calls the Gemini generateContent REST API.
// The API key is injected once at construction and sent via request
// header, never embedded in URLs, so it cannot leak through logged
// request paths.
type Client struct {
	// httpClient performs the requests.
	httpClient *http.Client

	// apiKey is the credential sent with every request.
	apiKey string

	// baseURL is the API origin. Overridable for tests.
	baseURL string

	// textModel is the model used for analysis calls.
	textModel string

	// imageModel is the model used for synthesis calls.
	imageModel string

	// logger receives request-level debug logging.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, typically to control the
// request timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API origin. Used by tests to point the
// client at a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithTextModel sets the model used for analysis calls.
func WithTextModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.textModel = model
		}
	}
}

// WithImageModel sets the model used for synthesis calls.
func WithImageModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.imageModel = model
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client with the given API key.
// Returns ErrMissingAPIKey if the key is empty: the credential check
// belongs at construction time so commands fail before any work.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		textModel:  "gemini-2.0-flash",
		imageModel: "gemini-2.0-flash",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

// Wire types for the generateContent endpoint.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Analyze sends an image and an instruction to the text model and
// returns the model's textual description. Failures propagate to the
// caller: an analysis error leaves the pipeline with nothing to
// continue from.
func (c *Client) Analyze(ctx context.Context, imageData []byte, mimeType, instruction string) (string, error) {
	req := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{Text: instruction},
				{InlineData: &inlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
	}

	resp, err := c.generateContent(ctx, c.textModel, req)
	if err != nil {
		return "", fmt.Errorf("analyze call failed: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return "", ErrNoText
	}

	c.logger.Debug("analysis complete",
		"model", c.textModel,
		"responseChars", len(text),
	)

	return text, nil
}

// Synthesize sends a text prompt to the image model and returns the
// generated image bytes and their MIME type. A response without any
// image part is a valid, non-exceptional outcome: the data is nil and
// the error is nil, and callers degrade by omitting that image.
func (c *Client) Synthesize(ctx context.Context, promptText string) ([]byte, string, error) {
	req := generateContentRequest{
		Contents: []content{{
			Parts: []part{{Text: promptText}},
		}},
	}

	resp, err := c.generateContent(ctx, c.imageModel, req)
	if err != nil {
		return nil, "", fmt.Errorf("synthesize call failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("decode inline image data: %w", err)
			}
			return data, p.InlineData.MIMEType, nil
		}
	}

	// No image part. Surface any text the model returned at debug level
	// since it often explains why generation was declined.
	if text := collectText(resp); text != "" {
		c.logger.Debug("synthesis returned text instead of image", "text", text)
	}

	return nil, "", nil
}

// ListModels returns the names of models available to the credential.
// Used as a diagnostic when a call fails with a model-related error.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	url := c.baseURL + "/v1beta/models"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
		Error *apiError `json:"error,omitempty"`
	}
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}
	if listResp.Error != nil {
		return nil, fmt.Errorf("API error %d (%s): %s",
			listResp.Error.Code, listResp.Error.Status, listResp.Error.Message)
	}

	names := make([]string, 0, len(listResp.Models))
	for _, m := range listResp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// generateContent performs one generateContent request against the
// given model and decodes the response.
func (c *Client) generateContent(ctx context.Context, model string, req generateContentRequest) (*generateContentResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", httpResp.StatusCode, err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("API error %d (%s): %s",
			resp.Error.Code, resp.Error.Status, resp.Error.Message)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %d", httpResp.StatusCode)
	}

	return &resp, nil
}

// collectText concatenates all text parts across candidates.
func collectText(resp *generateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
