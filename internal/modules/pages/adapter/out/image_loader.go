package out

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"folio/internal/modules/pages/domain"
	pagesout "folio/internal/modules/pages/port/out"
)

type FileImageLoader struct{}

func NewFileImageLoader() pagesout.Loader {
	return &FileImageLoader{}
}

func (l *FileImageLoader) Load(_ context.Context, _ int, locator string) (domain.Artifact, error) {
	f, err := os.Open(locator)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return decodeImage(f)
}

type HTTPImageLoader struct {
	client *http.Client
}

func NewHTTPImageLoader(client *http.Client) pagesout.Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPImageLoader{client: client}
}

func (l *HTTPImageLoader) Load(ctx context.Context, _ int, locator string) (domain.Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("build image request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Artifact{}, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	return decodeImage(resp.Body)
}

func decodeImage(r io.Reader) (domain.Artifact, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("decode image: %w", err)
	}
	return domain.Artifact{Image: img}, nil
}
