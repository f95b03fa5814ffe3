package out

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/tiff"
	"rsc.io/pdf"

	"folio/internal/modules/pages/domain"
	pagesout "folio/internal/modules/pages/port/out"
)

// PDFDocument is a lazily opened PDF. It serves as the document handle for
// discovery and as the page loader. rsc.io/pdf readers are not safe for
// concurrent use, so every access holds mu.
//
// A page renders as the largest raster image embedded in it, extracted with
// pdfcpu. Its text layer is always read as well and is what the page shows
// when it embeds no decodable image.
type PDFDocument struct {
	source string
	client *http.Client
	images imageExtractor

	mu      sync.Mutex
	doc     *pdf.Reader
	payload []byte
}

// imageExtractor returns the image to show for a 1-based page, or nil when
// the page embeds none it can decode.
type imageExtractor func(payload []byte, page int) (image.Image, error)

func NewPDFDocument(source string, client *http.Client) *PDFDocument {
	if client == nil {
		client = http.DefaultClient
	}
	return &PDFDocument{source: source, client: client, images: largestImage}
}

var (
	_ pagesout.DocumentHandle = (*PDFDocument)(nil)
	_ pagesout.Loader         = (*PDFDocument)(nil)
)

func (d *PDFDocument) NumPages(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.openLocked(ctx); err != nil {
		return 0, err
	}
	return d.doc.NumPage(), nil
}

// Load renders page index as its embedded image plus text lines ordered top
// to bottom.
func (d *PDFDocument) Load(ctx context.Context, index int, _ string) (artifact domain.Artifact, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.openLocked(ctx); err != nil {
		return domain.Artifact{}, err
	}
	if index < 1 || index > d.doc.NumPage() {
		return domain.Artifact{}, fmt.Errorf("pdf page %d out of range", index)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode pdf page %d: %v", index, r)
		}
	}()
	p := d.doc.Page(index)
	if p.V.IsNull() {
		return domain.Artifact{}, fmt.Errorf("pdf page %d is null", index)
	}
	lines := textLines(p.Content().Text)
	img, err := d.images(d.payload, index)
	if err != nil {
		if len(lines) == 0 {
			return domain.Artifact{}, fmt.Errorf("extract pdf page %d image: %w", index, err)
		}
		img = nil
	}
	return domain.Artifact{Image: img, Lines: lines}, nil
}

func (d *PDFDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = nil
	d.payload = nil
	return nil
}

func (d *PDFDocument) openLocked(ctx context.Context) error {
	if d.doc != nil {
		return nil
	}
	lower := strings.ToLower(d.source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return d.fetchLocked(ctx)
	}
	payload, err := os.ReadFile(d.source)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	return d.parseLocked(payload)
}

func (d *PDFDocument) fetchLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.source, nil)
	if err != nil {
		return fmt.Errorf("build pdf request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch pdf: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch pdf: unexpected status %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read pdf body: %w", err)
	}
	return d.parseLocked(payload)
}

func (d *PDFDocument) parseLocked(payload []byte) error {
	doc, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}
	d.doc = doc
	d.payload = payload
	return nil
}

var disablePDFCPUConfigDir = sync.OnceFunc(api.DisableConfigDir)

// largestImage extracts the page's embedded images with pdfcpu and decodes
// the one covering the most pixels. Formats without a registered decoder,
// such as JPX, are skipped.
func largestImage(payload []byte, page int) (image.Image, error) {
	disablePDFCPUConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pages, err := api.ExtractImagesRaw(bytes.NewReader(payload), []string{strconv.Itoa(page)}, conf)
	if err != nil {
		return nil, err
	}
	var best image.Image
	bestArea := 0
	for _, byObj := range pages {
		for _, raw := range byObj {
			if raw.Reader == nil || raw.IsImgMask || raw.Thumb {
				continue
			}
			area := raw.Width * raw.Height
			if area <= bestArea {
				continue
			}
			img, _, err := image.Decode(raw.Reader)
			if err != nil {
				continue
			}
			best, bestArea = img, area
		}
	}
	return best, nil
}

// textLines groups glyph runs sharing a baseline into lines.
func textLines(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		yi, yj := math.Round(sorted[i].Y), math.Round(sorted[j].Y)
		if yi != yj {
			return yi > yj
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []string
	var b strings.Builder
	lastY := math.Round(sorted[0].Y)
	lastEnd := sorted[0].X
	for _, t := range sorted {
		y := math.Round(t.Y)
		if y != lastY {
			lines = append(lines, strings.TrimSpace(b.String()))
			b.Reset()
			lastY = y
		} else if b.Len() > 0 && t.X-lastEnd > t.FontSize*0.2 {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	lines = append(lines, strings.TrimSpace(b.String()))
	return lines
}
