package out

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	pagesout "folio/internal/modules/pages/port/out"
)

type FileProber struct{}

func NewFileProber() pagesout.Prober {
	return &FileProber{}
}

func (p *FileProber) Exists(_ context.Context, locator string) (bool, error) {
	info, err := os.Stat(locator)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat page: %w", err)
	}
	return !info.IsDir(), nil
}

// HTTPProber issues HEAD requests; 2xx means the page exists, 404 and 410
// mean it does not.
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber(client *http.Client) pagesout.Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProber{client: client}
}

func (p *HTTPProber) Exists(ctx context.Context, locator string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, locator, nil)
	if err != nil {
		return false, fmt.Errorf("build probe request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("probe page: %w", err)
	}
	_ = resp.Body.Close()
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return false, nil
	default:
		return false, fmt.Errorf("probe page: unexpected status %s", resp.Status)
	}
}
