package httpclient

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"time"
)

const defaultUserAgent = "id-photo-studio/1.0"

type Options struct {
	// PreferIPv4 forces tcp4 dials; some hosts have broken IPv6 routes to
	// googleapis.com.
	PreferIPv4 bool
	Timeout    time.Duration
	UserAgent  string
	// Logger receives one debug record per outbound request.
	Logger *slog.Logger
}

// New builds the outbound client shared by the Gemini and Telegram clients.
// Image edits are slow, so the response header wait tracks the overall
// timeout instead of a fixed value.
func New(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &outboundTransport{
			next:      newTransport(opts.PreferIPv4, timeout),
			userAgent: userAgent,
			logger:    logger,
		},
	}
}

func newTransport(preferIPv4 bool, timeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	network := func(requested string) string {
		if preferIPv4 {
			return "tcp4"
		}
		return requested
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, nw, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network(nw), addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: time.Second,
	}
}

// outboundTransport stamps a User-Agent and logs each call with secrets
// stripped from the path.
type outboundTransport struct {
	next      http.RoundTripper
	userAgent string
	logger    *slog.Logger
}

func (t *outboundTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get("User-Agent") == "" {
		r = r.Clone(r.Context())
		r.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(r)

	attrs := []any{
		"method", r.Method,
		"host", r.URL.Host,
		"path", redactPath(r.URL.Path),
		"dur_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		t.logger.Debug("outbound request failed", append(attrs, "err", err)...)
		return nil, err
	}
	t.logger.Debug("outbound request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}

// Telegram puts the bot token in the URL path: /bot<token>/method and
// /file/bot<token>/path.
var botTokenPattern = regexp.MustCompile(`/bot[^/]+`)

func redactPath(path string) string {
	return botTokenPattern.ReplaceAllString(path, "/bot<redacted>")
}
