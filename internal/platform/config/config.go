package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "folio/internal/platform/errors"
)

const DefaultFile = "folio.yaml"

const (
	KindImages = "images"
	KindPDF    = "pdf"

	DiscoveryFixed    = "fixed"
	DiscoveryProbe    = "probe"
	DiscoveryDocument = "document"
)

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SourceConfig describes where pages come from. Base is a directory, an
// http(s) base URL, or a PDF file path.
type SourceConfig struct {
	Kind      string `yaml:"kind"`
	Base      string `yaml:"base"`
	Pattern   string `yaml:"pattern"`
	Discovery string `yaml:"discovery"`
	Total     int    `yaml:"total"`
	MaxProbe  int    `yaml:"max_probe"`
}

type ViewerConfig struct {
	Eager          int           `yaml:"eager"`
	Window         int           `yaml:"window"`
	Transition     time.Duration `yaml:"transition"`
	SwipeThreshold int           `yaml:"swipe_threshold"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		Source: SourceConfig{
			Kind:      KindImages,
			Base:      filepath.Join("assets", "images"),
			Pattern:   "page-%02d.png",
			Discovery: DiscoveryProbe,
			MaxProbe:  100,
		},
		Viewer: ViewerConfig{
			Eager:          5,
			Window:         2,
			Transition:     600 * time.Millisecond,
			SwipeThreshold: 50,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(".folio", "folio.log"),
		},
	}
}

// Load reads path on top of Default. A missing file is not an error when
// path is the default file name, so folio runs without any config.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplySource points the config at a source given on the command line. PDF
// files switch the kind and discovery strategy.
func (c *Config) ApplySource(source string) {
	source = strings.TrimSpace(source)
	if source == "" {
		return
	}
	c.Source.Base = source
	if strings.EqualFold(filepath.Ext(source), ".pdf") {
		c.Source.Kind = KindPDF
		c.Source.Discovery = DiscoveryDocument
		return
	}
	if c.Source.Kind == KindPDF {
		c.Source.Kind = KindImages
		c.Source.Discovery = DiscoveryProbe
	}
}

func (c *Config) normalize() {
	d := Default()
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	c.Source.Discovery = strings.ToLower(strings.TrimSpace(c.Source.Discovery))
	if c.Source.Kind == "" {
		c.Source.Kind = d.Source.Kind
	}
	if c.Source.Pattern == "" {
		c.Source.Pattern = d.Source.Pattern
	}
	if c.Source.Discovery == "" {
		c.Source.Discovery = d.Source.Discovery
		if c.Source.Kind == KindPDF {
			c.Source.Discovery = DiscoveryDocument
		}
	}
	if c.Source.MaxProbe <= 0 {
		c.Source.MaxProbe = d.Source.MaxProbe
	}
	if c.Viewer.Eager < 0 {
		c.Viewer.Eager = 0
	}
	if c.Viewer.Window < 0 {
		c.Viewer.Window = 0
	}
	if c.Viewer.Transition <= 0 {
		c.Viewer.Transition = d.Viewer.Transition
	}
	if c.Viewer.SwipeThreshold <= 0 {
		c.Viewer.SwipeThreshold = d.Viewer.SwipeThreshold
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Source.Base) == "" {
		return fmt.Errorf("%w: source base is required", apperrors.ErrInvalidInput)
	}
	switch c.Source.Kind {
	case KindImages:
		if c.Source.Discovery == DiscoveryDocument {
			return fmt.Errorf("%w: discovery %q needs source kind %q", apperrors.ErrInvalidInput, DiscoveryDocument, KindPDF)
		}
		if !strings.Contains(c.Source.Pattern, "%") {
			return fmt.Errorf("%w: pattern %q has no index verb", apperrors.ErrInvalidInput, c.Source.Pattern)
		}
	case KindPDF:
		if c.Source.Discovery == DiscoveryProbe {
			return fmt.Errorf("%w: discovery %q is not available for pdf sources", apperrors.ErrInvalidInput, DiscoveryProbe)
		}
	default:
		return fmt.Errorf("%w: unknown source kind %q", apperrors.ErrInvalidInput, c.Source.Kind)
	}
	switch c.Source.Discovery {
	case DiscoveryFixed:
		if c.Source.Total <= 0 {
			return fmt.Errorf("%w: fixed discovery needs total > 0", apperrors.ErrInvalidInput)
		}
	case DiscoveryProbe, DiscoveryDocument:
	default:
		return fmt.Errorf("%w: unknown discovery %q", apperrors.ErrInvalidInput, c.Source.Discovery)
	}
	return nil
}

// IsRemote reports whether pages are fetched over HTTP.
func (c SourceConfig) IsRemote() bool {
	base := strings.ToLower(c.Base)
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}
