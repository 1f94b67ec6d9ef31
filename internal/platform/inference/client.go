package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goodakun/smartlearn-backend/internal/platform/ctxutil"
	"github.com/goodakun/smartlearn-backend/internal/platform/envutil"
)

// Classifier is the hosted learning-style model. It takes a normalized
// feature vector and returns a probability distribution over the label
// classes. It may be unreachable; callers are expected to fall back.
type Classifier interface {
	Predict(ctx context.Context, features []float64) ([]float64, error)
}

type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	Timeout    time.Duration
	MaxRetries int

	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	apiKey  string
	model   string

	timeout    time.Duration
	maxRetries int

	httpClient *http.Client
}

var ErrNotConfigured = errors.New("inference: missing INFERENCE_BASE_URL")

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrNotConfigured
	}

	// The prediction path must degrade to the rule-based classifier instead
	// of hanging a request, so the default timeout is short.
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      strings.TrimSpace(opts.Model),
		timeout:    timeout,
		maxRetries: maxRetries,
		httpClient: hc,
	}, nil
}

func NewFromEnv() (*Client, error) {
	return New(Options{
		BaseURL:    strings.TrimSpace(os.Getenv("INFERENCE_BASE_URL")),
		APIKey:     strings.TrimSpace(os.Getenv("INFERENCE_API_KEY")),
		Model:      envutil.String("INFERENCE_MODEL", "learning-style-v1"),
		Timeout:    envutil.Seconds("INFERENCE_TIMEOUT_SECONDS", 5*time.Second),
		MaxRetries: envutil.Int("INFERENCE_MAX_RETRIES", 1),
	})
}

func (c *Client) BaseURL() string { return c.baseURL }

type classifyRequest struct {
	Model  string    `json:"model,omitempty"`
	Inputs []float64 `json:"inputs"`
}

type classifyResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

func (c *Client) Predict(ctx context.Context, features []float64) ([]float64, error) {
	req := classifyRequest{
		Model:  c.model,
		Inputs: features,
	}

	var resp classifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/classify", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Probabilities) == 0 {
		return nil, errors.New("inference: empty probability distribution")
	}
	return resp.Probabilities, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "inference: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("inference http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			return json.Unmarshal(raw, out)
		}
		lastErr = err

		var he *HTTPError
		retryable := errors.As(err, &he) && (he.StatusCode == 429 || he.StatusCode >= 500)
		if !retryable || attempt == c.maxRetries {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return raw, nil
}
