// Package brainstorm is a thin client for the hosted generative-text API
// behind the contact page's idea assistant. Failures never surface as errors
// to the caller; they map to canned user-facing strings.
package brainstorm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

	maxRetries   = 5
	retryWaitMin = 1 * time.Second
	retryWaitMax = 16 * time.Second

	// RateLimitMessage is returned verbatim when the endpoint answers 429.
	RateLimitMessage = "The assistant is getting a lot of questions right now. Try again in a minute!"

	// FailureMessage is returned verbatim on any other failure.
	FailureMessage = "The assistant is having trouble connecting. Please try again later!"
)

// personaPrompt frames every user question before it reaches the model.
const personaPrompt = "You are a professional videography assistant for %s. " +
	"Help visitors brainstorm video concepts, shoots, and edits. " +
	"Answer briefly and with style: %s"

// Config controls how the brainstorm client behaves.
type Config struct {
	APIKey     string
	Endpoint   string // override for tests; defaults to the Gemini REST endpoint
	StudioName string // persona framing, e.g. "RFX Visual"
	HTTPClient *http.Client
	Log        *logrus.Logger
}

// Client asks the generative-text endpoint for brainstorm responses.
type Client struct {
	apiKey     string
	endpoint   string
	studioName string
	client     *retryablehttp.Client
	log        *logrus.Logger
}

// New builds a Client. The API key is required; it stays server-side and is
// appended as a query parameter per the endpoint's auth scheme.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("brainstorm: API key is required (set GEMINI_API_KEY)")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	studio := strings.TrimSpace(cfg.StudioName)
	if studio == "" {
		studio = "the studio"
	}

	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.RetryWaitMin = retryWaitMin
	rc.RetryWaitMax = retryWaitMax
	rc.Logger = nil
	// A 429 is terminal: it maps straight to the canned rate-limit message
	// instead of burning more quota on retries.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if cfg.HTTPClient != nil {
		rc.HTTPClient = cfg.HTTPClient
	} else {
		rc.HTTPClient = &http.Client{Timeout: 45 * time.Second}
	}

	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		studioName: studio,
		client:     rc,
		log:        log,
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Ask sends the user's prompt wrapped in the persona instruction and returns
// the model's text. It never returns a user-visible error: rate limiting and
// any other failure resolve to canned strings, so the result is always
// displayable.
func (c *Client) Ask(ctx context.Context, promptText string) string {
	wrapped := fmt.Sprintf(personaPrompt, c.studioName, promptText)
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: wrapped}}}},
	})
	if err != nil {
		c.log.WithError(err).Error("brainstorm: encode request")
		return FailureMessage
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		c.log.WithError(err).Error("brainstorm: build request")
		return FailureMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("brainstorm: request failed after retries")
		return FailureMessage
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.log.WithError(err).Warn("brainstorm: read response")
		return FailureMessage
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return RateLimitMessage
	}
	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Warn("brainstorm: unexpected status")
		return FailureMessage
	}

	text := gjson.GetBytes(raw, "candidates.0.content.parts.0.text")
	if !text.Exists() || text.String() == "" {
		c.log.Warn("brainstorm: response missing candidates")
		return FailureMessage
	}
	return text.String()
}
