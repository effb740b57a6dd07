package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public range endpoint of the breach corpus.
	DefaultBaseURL = "https://api.pwnedpasswords.com/range/"
	// DefaultTimeout bounds a single range lookup end to end.
	DefaultTimeout = 5 * time.Second

	prefixLength = 5
)

// ErrUnavailable wraps every transport-level lookup failure: connection
// errors, timeouts, and non-200 responses.
var ErrUnavailable = errors.New("breach range service unavailable")

// Status classifies a lookup outcome.
type Status uint8

const (
	// StatusNotFound means the corpus has no entry for the password.
	StatusNotFound Status = iota
	// StatusFound means the password appears in the corpus.
	StatusFound
	// StatusUnavailable means the lookup could not be completed.
	StatusUnavailable
)

// String returns a stable snake_case name for the status.
func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusFound:
		return "found"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the outcome of a breach lookup. Occurrences is only meaningful
// when Status is [StatusFound].
type Result struct {
	Breached    bool
	Occurrences int
	Status      Status
}

// Options configures a [Client]. The zero value selects the public endpoint
// with the default timeout and response padding enabled.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the transport; its Timeout is left untouched
	// when set, so callers can bring their own deadline discipline.
	HTTPClient *http.Client

	// DisablePadding turns off the padded-response request header. Padded
	// responses include zero-count filler suffixes that the parser skips.
	DisablePadding bool
}

// Client queries the breach corpus by digest prefix. Safe for concurrent
// use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	addPadding bool
}

// NewClient returns a client for the configured range endpoint.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		addPadding: !opts.DisablePadding,
	}
}

// Lookup checks password against the corpus. A corpus miss is a successful
// lookup with [StatusNotFound]; only transport faults return an error, and
// the accompanying Result always carries [StatusUnavailable] so callers can
// report a structured outcome either way.
func (c *Client) Lookup(ctx context.Context, password string) (Result, error) {
	digest := sha1.Sum([]byte(password))
	hexDigest := strings.ToUpper(hex.EncodeToString(digest[:]))
	prefix := hexDigest[:prefixLength]
	suffix := hexDigest[prefixLength:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+prefix, nil)
	if err != nil {
		return Result{Status: StatusUnavailable}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if c.addPadding {
		req.Header.Set("Add-Padding", "true")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Status: StatusUnavailable}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Status: StatusUnavailable}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	count, found, err := scanRange(resp.Body, suffix)
	if err != nil {
		return Result{Status: StatusUnavailable}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !found {
		return Result{Status: StatusNotFound}, nil
	}

	return Result{Breached: true, Occurrences: count, Status: StatusFound}, nil
}

// scanRange reads "SUFFIX:COUNT" lines and resolves the match locally.
// Zero-count padding lines are ignored.
func scanRange(body io.Reader, wantSuffix string) (int, bool, error) {
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lineSuffix, countText, ok := strings.Cut(line, ":")
		if !ok {
			return 0, false, fmt.Errorf("malformed range line %q", line)
		}
		if !strings.EqualFold(lineSuffix, wantSuffix) {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil {
			return 0, false, fmt.Errorf("malformed occurrence count %q", countText)
		}
		if count <= 0 {
			// Padding entry for our own suffix; treat as absent.
			return 0, false, nil
		}
		return count, true, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, false, err
	}
	return 0, false, nil
}
