package notemark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrUnsupportedScheme reports a URL that is not http or https.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	// ErrHTTPStatus reports a response outside the 2xx range.
	ErrHTTPStatus = errors.New("http status")
)

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Format  Format
	Width   int
	Theme   Theme
	Options []RenderOption
}

// Fetch GETs rawURL and returns the body of a 2xx response. The caller closes the
// body. A nil client selects http.DefaultClient. Cancelling ctx aborts the request and
// any read still in progress.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, req.URL.Scheme)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w %s", ErrHTTPStatus, resp.Status)
	}
	return resp.Body, nil
}

// HTTPRender fetches markup over HTTP(S) and renders it.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("render http: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("render http: Writer is nil")
	}
	body, err := Fetch(ctx, req.Client, req.URL)
	if err != nil {
		return fmt.Errorf("render http: %w", err)
	}
	defer body.Close()
	return Render(RenderRequest{
		Reader:  body,
		Writer:  req.Writer,
		Format:  req.Format,
		Width:   req.Width,
		Theme:   req.Theme,
		Options: req.Options,
	})
}
