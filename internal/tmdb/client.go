// Package tmdb wraps the TMDB API for searching, discovering and describing movies.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	DefaultImageBase = "https://image.tmdb.org/t/p"
	DefaultLanguage  = "pt-BR"
	DefaultQPS       = 40
	DefaultTimeout   = 10 * time.Second
)

var (
	// ErrRequestFailed matches every error returned by Client calls.
	ErrRequestFailed = errors.New("tmdb request failed")

	ErrMissingCredential = errors.New("tmdb api key is required")
)

// OpError reports which operation failed. The source defines no error codes,
// so Status is informational only.
type OpError struct {
	Op     string
	Status int
	Err    error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return "failed to " + e.Op
	}
	return "failed to " + e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

func (e *OpError) Is(target error) bool { return target == ErrRequestFailed }

type Config struct {
	APIKey    string
	ReadToken string
	BaseURL   string
	ImageBase string
	Language  string
	// QPS caps outgoing requests per second. Zero uses DefaultQPS, negative
	// disables the limiter.
	QPS        int
	HTTPClient *http.Client
}

type Client struct {
	apiKey    string
	readToken string
	baseURL   string
	imageBase string
	language  string
	limiter   *rate.Limiter
	http      *http.Client
}

func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	readToken := strings.TrimSpace(cfg.ReadToken)
	if readToken == "" && looksLikeJWT(apiKey) {
		readToken = apiKey
		apiKey = ""
	}
	if apiKey == "" && readToken == "" {
		return nil, ErrMissingCredential
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	switch {
	case cfg.QPS == 0:
		limiter = rate.NewLimiter(rate.Limit(DefaultQPS), DefaultQPS)
	case cfg.QPS > 0:
		limiter = rate.NewLimiter(rate.Limit(cfg.QPS), cfg.QPS)
	}

	return &Client{
		apiKey:    apiKey,
		readToken: readToken,
		baseURL:   strings.TrimRight(orDefault(cfg.BaseURL, DefaultBaseURL), "/"),
		imageBase: strings.TrimRight(orDefault(cfg.ImageBase, DefaultImageBase), "/"),
		language:  orDefault(cfg.Language, DefaultLanguage),
		limiter:   limiter,
		http:      httpClient,
	}, nil
}

func (c *Client) SearchMovies(ctx context.Context, req SearchRequest) (*Page, error) {
	return c.Movies(ctx, req)
}

func (c *Client) DiscoverMovies(ctx context.Context, req DiscoverRequest) (*Page, error) {
	return c.Movies(ctx, req)
}

// Movies fetches the page described by q.
func (c *Client) Movies(ctx context.Context, q Query) (*Page, error) {
	if q == nil {
		return nil, &OpError{Op: "fetch movies", Err: errors.New("nil query")}
	}
	var page Page
	if err := c.get(ctx, q.op(), q.endpoint(), q.values(), &page); err != nil {
		return nil, err
	}
	return normalizePageData(&page, q.PageNumber()), nil
}

func (c *Client) PopularMovies(ctx context.Context, page int) (*Page, error) {
	page = normalizePage(page)
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))

	var out Page
	if err := c.get(ctx, "fetch popular movies", "/movie/popular", values, &out); err != nil {
		return nil, err
	}
	return normalizePageData(&out, page), nil
}

func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var payload genreListResponse
	if err := c.get(ctx, "fetch genres", "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Genres == nil {
		return []Genre{}, nil
	}
	return payload.Genres, nil
}

func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	const op = "fetch movie details"
	if id <= 0 {
		return nil, &OpError{Op: op, Err: errors.New("invalid movie id")}
	}
	var details MovieDetails
	if err := c.get(ctx, op, fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) MovieVideos(ctx context.Context, id int64) ([]Video, error) {
	const op = "fetch movie videos"
	if id <= 0 {
		return nil, &OpError{Op: op, Err: errors.New("invalid movie id")}
	}
	var payload videoListResponse
	if err := c.get(ctx, op, fmt.Sprintf("/movie/%d/videos", id), nil, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return []Video{}, nil
	}
	return payload.Results, nil
}

func (c *Client) get(ctx context.Context, op, path string, values url.Values, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &OpError{Op: op, Err: err}
	}

	if values == nil {
		values = url.Values{}
	}
	if c.apiKey != "" {
		values.Set("api_key", c.apiKey)
	}
	values.Set("language", c.language)
	endpoint := c.baseURL + path + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return &OpError{Op: op, Err: redactKey(err)}
	}
	req.Header.Set("Accept", "application/json")
	c.applyAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &OpError{Op: op, Err: redactKey(err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &OpError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("tmdb returned %s", resp.Status)}
		if cerr := resp.Body.Close(); cerr != nil {
			return errors.Join(statusErr, cerr)
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		decodeErr := &OpError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		if cerr := resp.Body.Close(); cerr != nil {
			return errors.Join(decodeErr, cerr)
		}
		return decodeErr
	}
	return resp.Body.Close()
}

func (c *Client) applyAuth(req *http.Request) {
	if c.readToken == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.readToken)
}

func normalizePageData(page *Page, requested int) *Page {
	if page.Results == nil {
		page.Results = []Movie{}
	}
	if page.Page < 1 {
		page.Page = requested
	}
	return page
}

var apiKeyParam = regexp.MustCompile(`(api_key=)[^&\s"]*`)

// redactKey strips the api key from the URL that net/http puts in transport
// errors. Those messages end up in logs and API responses.
func redactKey(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		uerr.URL = apiKeyParam.ReplaceAllString(uerr.URL, "${1}REDACTED")
		return err
	}
	q := u.Query()
	if !q.Has("api_key") {
		return err
	}
	q.Set("api_key", "REDACTED")
	u.RawQuery = q.Encode()
	uerr.URL = u.String()
	return err
}

func looksLikeJWT(token string) bool {
	parts := strings.Split(strings.TrimSpace(token), ".")
	return len(parts) == 3 && len(token) > 80
}

func orDefault(val, fallback string) string {
	if val = strings.TrimSpace(val); val != "" {
		return val
	}
	return fallback
}
