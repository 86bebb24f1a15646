package pnc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/google/uuid"

	"github.com/schererja/pncctl/pkg/logger"
)

// DefaultPageSize is used when a client is created without a page size
const DefaultPageSize = 50

// Client talks to the REST API of the build orchestration service
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	pageSize int
	log      *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPageSize sets the number of items requested per collection page
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a client for the service rooted at baseURL, e.g.
// https://pnc.example.com/pnc-rest/v2
func NewClient(baseURL string, log *logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid service url %q: scheme must be http or https", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	if log == nil {
		log = logger.Discard()
	}

	c := &Client{
		baseURL:  u,
		http:     &http.Client{},
		pageSize: DefaultPageSize,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Builds lists all builds
func (c *Client) Builds(opts ListOptions) *Collection[Build] {
	return list[Build](c, "builds", opts)
}

// BuiltArtifacts lists the artifacts produced by a build
func (c *Client) BuiltArtifacts(buildID string, opts ListOptions) *Collection[Artifact] {
	path, err := resourcePath("builds", buildID, "artifacts", "built")
	if err != nil {
		return failed[Artifact](err)
	}
	return artifacts(c, path, opts)
}

// DependencyArtifacts lists the artifacts a build depended on
func (c *Client) DependencyArtifacts(buildID string, opts ListOptions) *Collection[Artifact] {
	path, err := resourcePath("builds", buildID, "artifacts", "dependencies")
	if err != nil {
		return failed[Artifact](err)
	}
	return artifacts(c, path, opts)
}

// GetBuild retrieves a single build
func (c *Client) GetBuild(ctx context.Context, id string) (*Build, error) {
	path, err := resourcePath("builds", id)
	if err != nil {
		return nil, err
	}
	var b Build
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// TriggerBuild starts a new build of the given build configuration
func (c *Client) TriggerBuild(ctx context.Context, buildConfigID string, params BuildParameters) (*Build, error) {
	path, err := resourcePath("build-configs", buildConfigID, "build")
	if err != nil {
		return nil, err
	}
	var b Build
	if err := c.doJSON(ctx, http.MethodPost, path, params.query(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CancelBuild asks the service to cancel a running build
func (c *Client) CancelBuild(ctx context.Context, id string) error {
	path, err := resourcePath("builds", id, "cancel")
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}

// ScmArchive opens the source archive of a build. The caller must close the
// returned reader.
func (c *Client) ScmArchive(ctx context.Context, id string) (io.ReadCloser, error) {
	path, err := resourcePath("builds", id, "scm-archive")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodGet, path, nil, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// resourcePath returns the escaped path collection/{id}/sub... An id that is
// empty, a dot segment or contains a slash would address another resource and
// is rejected.
func resourcePath(collection, id string, sub ...string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	segments := append([]string{collection, url.PathEscape(id)}, sub...)
	return strings.Join(segments, "/"), nil
}

// failed returns a collection whose first page fetch reports err
func failed[T any](err error) *Collection[T] {
	return NewCollection(1, func(context.Context, int, int) ([]T, int, error) {
		return nil, 0, err
	})
}

func list[T any](c *Client, path string, opts ListOptions) *Collection[T] {
	return NewCollection(c.pageSize, pages[T](c, path, opts))
}

// pages fetches collection pages of path. The service pages by index, so
// offsets are always multiples of pageSize.
func pages[T any](c *Client, path string, opts ListOptions) PageFetcher[T] {
	return func(ctx context.Context, offset, pageSize int) ([]T, int, error) {
		q := url.Values{}
		q.Set("pageIndex", strconv.Itoa(offset/pageSize))
		q.Set("pageSize", strconv.Itoa(pageSize))
		if opts.Sort != nil {
			q.Set("sort", *opts.Sort)
		}
		if opts.Query != nil {
			q.Set("q", *opts.Query)
		}

		var p page[T]
		if err := c.doJSON(ctx, http.MethodGet, path, q, &p); err != nil {
			return nil, 0, err
		}
		return p.Content, p.TotalHits, nil
	}
}

func artifacts(c *Client, path string, opts ListOptions) *Collection[Artifact] {
	fetch := pages[Artifact](c, path, opts)
	return NewCollection(c.pageSize, func(ctx context.Context, offset, pageSize int) ([]Artifact, int, error) {
		items, total, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, 0, err
		}
		var size int64
		for _, a := range items {
			size += a.Size
		}
		c.log.Debug("Fetched artifact page",
			slog.String("path", path),
			slog.Int("offset", offset),
			slog.Int("count", len(items)),
			slog.String("size", units.HumanSize(float64(size))))
		return items, total, nil
	})
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, method, path, query, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response body: %v", err),
			RequestID:  resp.Request.Header.Get("X-Request-ID"),
		}
	}
	return nil
}

// do sends a request for the escaped path below the base url and returns the
// response when the status is 2xx. Any other status is turned into a
// RemoteError and the body is closed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, accept string) (*http.Response, error) {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", requestID)

	c.log.DebugContext(ctx, "Sending request",
		slog.String("method", method),
		slog.String("url", u.String()),
		slog.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return nil, &RemoteError{RequestID: requestID, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newRemoteError(resp, requestID)
	}
	return resp, nil
}
