package bootstrap_test

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"folio/internal/bootstrap"
	"folio/internal/platform/config"
)

func writePages(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 4, 3))
		img.SetRGBA(0, 0, color.RGBA{R: uint8(i), A: 0xff})
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("page-%02d.png", i)))
		if err != nil {
			t.Fatalf("create page: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("encode page: %v", err)
		}
		_ = f.Close()
	}
}

func TestHeadlessWalkOverImageDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writePages(t, dir, 12)

	cfg := config.Default()
	cfg.ApplySource(dir)
	app, err := bootstrap.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()
	if app.Session == "" {
		t.Fatalf("expected a session id")
	}

	probe, err := app.PagesCLI.Probe(context.Background())
	if err != nil || probe.Total != 12 {
		t.Fatalf("probe: %+v %v", probe, err)
	}
	if _, err := app.NavigatorCLI.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	final, err := app.NavigatorCLI.Walk(context.Background(), 5, nil)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if final.Indicator != "6 / 12" {
		t.Fatalf("expected 6 / 12, got %q", final.Indicator)
	}

	pages, err := app.PagesCLI.ListPages(context.Background())
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	for _, p := range pages {
		loaded := p.Index <= 8
		if p.Loaded() != loaded {
			t.Fatalf("page %d: loaded=%t state=%s", p.Index, p.Loaded(), p.State)
		}
	}
	el, ok := app.PagesTUI.Element(context.Background(), 6)
	if !ok || el.Image == nil || el.Image.Bounds().Dx() != 4 {
		t.Fatalf("expected decoded image for page 6, got %+v %t", el, ok)
	}
}

func TestMissingDirectoryFailsDiscovery(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.ApplySource(filepath.Join(t.TempDir(), "empty"))
	app, err := bootstrap.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := app.NavigatorCLI.Start(context.Background()); err == nil {
		t.Fatalf("expected discovery failure")
	}
}

func TestInvalidConfigIsRejected(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Source.Kind = "video"
	if _, err := bootstrap.New(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected invalid config error")
	}
}
