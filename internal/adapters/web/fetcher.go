package web

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	portssvc "github.com/Sai-kurakula/banks-etl/internal/core/ports/services"
)

// HTTPFetcher retrieves documents over HTTP. No timeout is configured on the
// default client; callers wanting one inject their own client or wrap the
// context.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a new HTTPFetcher. A nil client falls back to
// http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

var _ portssvc.PageFetcher = (*HTTPFetcher)(nil)

// Fetch performs a blocking GET of url and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", apperrors.ErrFetch, url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", apperrors.ErrFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", apperrors.ErrFetch, err)
	}
	return body, nil
}
