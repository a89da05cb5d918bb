package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"offerdesk/internal/logger"
	. "offerdesk/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
)

const (
	contentType            = "application/x-www-form-urlencoded;charset=UTF-8"
	DefaultFailureMessage  = "Failed to submit form"
	DefaultSuccessMessage  = "Submitted successfully!"
	maxResponseBytes int64 = 1 << 20
)

var ErrEndpointNotConfigured = errors.New("contact endpoint is not configured")

// Config is the explicit replacement for the build-time endpoint variable.
type Config struct {
	EndpointURL string
	// Timeout bounds one round trip. Zero keeps the HTTP client's default.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Submitter is what the contact controller depends on.
type Submitter interface {
	Submit(ctx context.Context, fields ContactFields) (SubmissionResult, error)
}

type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	policy   *bluemonday.Policy
	log      logger.Logger
}

// NewClient fails fast when the endpoint is missing or is not an absolute
// http(s) URL so a misconfigured deployment never posts to nowhere.
func NewClient(config Config) (*Client, error) {
	log := logger.New("contact").Function("NewClient")

	raw := strings.TrimSpace(config.EndpointURL)
	if raw == "" {
		return nil, log.Err("contact endpoint missing", ErrEndpointNotConfigured)
	}

	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, log.Err("contact endpoint is not a URL", fmt.Errorf("%w: %w", ErrEndpointNotConfigured, err))
	}
	if !endpoint.IsAbs() || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return nil, log.Err(
			"contact endpoint must be an absolute http(s) URL",
			ErrEndpointNotConfigured,
			"endpoint", raw,
		)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		endpoint: endpoint.String(),
		timeout:  config.Timeout,
		http:     httpClient,
		policy:   bluemonday.StrictPolicy(),
		log:      logger.New("contact"),
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Encode serializes trimmed fields plus the source tag.
func Encode(fields ContactFields) url.Values {
	trimmed := fields.Trimmed()
	return url.Values{
		FieldName:    {trimmed.Name},
		FieldEmail:   {trimmed.Email},
		FieldPhone:   {trimmed.Phone},
		FieldMessage: {trimmed.Message},
		"source":     {ContactSource},
	}
}

// Submit performs one POST. A non-nil error always comes with a failed
// result whose message is fit to show the user.
func (c *Client) Submit(ctx context.Context, fields ContactFields) (SubmissionResult, error) {
	log := c.log.Function("Submit")

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(Encode(fields).Encode()))
	if err != nil {
		return c.failure(DefaultFailureMessage), log.Err("failed to build contact request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return c.failure(DefaultFailureMessage), log.Err("contact request failed", err, "endpoint", c.endpoint)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return c.failure(DefaultFailureMessage), log.Err("failed to read contact response", err, "status", res.StatusCode)
	}

	return c.interpret(res.StatusCode, body)
}

func (c *Client) interpret(status int, body []byte) (SubmissionResult, error) {
	log := c.log.Function("interpret")

	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return c.failure(DefaultFailureMessage), log.Error(
			"contact endpoint returned invalid JSON",
			"status", status,
			"body", truncate(string(body), 200),
		)
	}

	message := c.plainText(gjson.GetBytes(body, "message").String())
	success := gjson.GetBytes(body, "success")
	explicitFailure := success.Exists() && success.Type == gjson.False

	if status < 200 || status > 299 || explicitFailure {
		if message == "" {
			message = DefaultFailureMessage
		}
		return SubmissionResult{Success: false, Message: message}, log.Error(
			"contact endpoint rejected submission",
			"status", status,
			"message", message,
		)
	}

	if message == "" {
		message = DefaultSuccessMessage
	}
	log.Info("contact submission accepted", "status", status)
	return SubmissionResult{Success: true, Message: message}, nil
}

func (c *Client) failure(message string) SubmissionResult {
	message = strings.TrimSpace(message)
	if message == "" {
		message = DefaultFailureMessage
	}
	return SubmissionResult{Success: false, Message: message}
}

// plainText strips any markup from a remote message. The result is plain
// text; templates escape it again on output.
func (c *Client) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
