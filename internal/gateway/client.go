package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voicemail-console/internal/auth"
	"voicemail-console/internal/metrics"
	"voicemail-console/pkg/logger"

	"github.com/google/uuid"
)

// ErrRequestFailed is wrapped by every error the client returns:
// transport failures, non-2xx statuses and undecodable bodies alike.
var ErrRequestFailed = errors.New("gateway: request failed")

// StatusError carries a non-2xx response for logs.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }

const maxErrorBody = 256

type Options struct {
	// HTTPClient defaults to a client with Timeout, which defaults to none.
	HTTPClient *http.Client
	Timeout    time.Duration
	Credential auth.Credential
	Logger     *slog.Logger
}

// Client talks to the voicemail service's JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	cred    auth.Credential
	log     *slog.Logger
}

func New(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		cred:    opts.Credential,
		log:     logger.Component(opts.Logger, "gateway"),
	}
}

// AudioURL is where the audio for voicemail id can be downloaded.
func (c *Client) AudioURL(id string) string {
	return c.baseURL + "/api/voicemails/" + url.PathEscape(id) + "/audio"
}

// do sends in as JSON (when non-nil) and decodes the response into out
// (when non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	rid := uuid.NewString()
	log := logger.From(ctx, c.log).With("op", op, "method", method, "path", path, "gateway_request_id", rid)
	defer func() {
		d := time.Since(start)
		metrics.ObserveGateway(op, d, err)
		if err != nil {
			log.WarnContext(ctx, "gateway request failed", "duration_ms", d.Milliseconds(), "err", err)
			return
		}
		log.DebugContext(ctx, "gateway request", "duration_ms", d.Milliseconds())
	}()

	var body io.Reader
	if in != nil {
		b, merr := json.Marshal(in)
		if merr != nil {
			return fmt.Errorf("%s: %w: encode: %w", op, ErrRequestFailed, merr)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(logger.HeaderRequestID, rid)
	if h := c.cred.Header(); h != "" {
		req.Header.Set(auth.AuthorizationHeader, h)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w: read body: %w", op, ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncate(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w: decode: %w", op, ErrRequestFailed, err)
	}
	return nil
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}

func seg(s string) string { return url.PathEscape(s) }
