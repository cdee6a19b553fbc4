package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"
)

const (
	// DefaultBaseURL is the KAIST cafeteria menu page.
	DefaultBaseURL = "https://www.kaist.ac.kr/kr/html/campus/053001.html"

	// LocationQueryParam is the query parameter carrying the location.
	LocationQueryParam = "dvs_cd"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "babbot/1.0 (+https://github.com/nao1215/babbot)"

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize int64 = 5 * 1024 * 1024

	// DefaultTimeout is used when the Fetcher builds its own HTTP client.
	DefaultTimeout = 30 * time.Second
)

// Fetcher downloads and parses the menu page for a location parameter.
// A Fetcher is safe for concurrent use as long as its http.Client is.
type Fetcher struct {
	// client performs the requests.
	client *http.Client

	// customClient is set once WithHTTPClient supplied the client.
	customClient bool

	// baseURL is the page URL without the location parameter.
	baseURL string

	// userAgent is the User-Agent header value.
	userAgent string

	// maxBodySize limits the bytes read from a response.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
			f.customClient = true
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// It has no effect after WithHTTPClient.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 && !f.customClient {
			f.client = &http.Client{Timeout: d}
		}
	}
}

// WithBaseURL overrides the menu page URL.
func WithBaseURL(baseURL string) FetcherOption {
	return func(f *Fetcher) {
		if baseURL != "" {
			f.baseURL = baseURL
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize limits the response body size in bytes.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the page address for the given location parameter.
func (f *Fetcher) URL(param string) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(LocationQueryParam, param)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs one GET for param and parses the response.
//
// Transport failures, non-2xx responses and undecodable bodies are returned
// as *FetchError. A body that is not HTML at all is a *ParseError.
func (f *Fetcher) Fetch(ctx context.Context, param string) (*Document, error) {
	pageURL, err := f.URL(param)
	if err != nil {
		return nil, &FetchError{URL: f.baseURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %q", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	text, err := decodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}

	return ParseDocument(bytes.NewReader(text), pageURL)
}

// decodeBody converts body to UTF-8 using the declared or sniffed charset.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	if len(body) == 0 {
		return body, nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return decoded, nil
}
