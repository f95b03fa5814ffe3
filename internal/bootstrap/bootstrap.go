package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	navinadapter "folio/internal/modules/navigator/adapter/in"
	navoutadapter "folio/internal/modules/navigator/adapter/out"
	navout "folio/internal/modules/navigator/port/out"
	navservice "folio/internal/modules/navigator/service"
	navusecase "folio/internal/modules/navigator/usecase"
	pagesinadapter "folio/internal/modules/pages/adapter/in"
	pagesoutadapter "folio/internal/modules/pages/adapter/out"
	pagesdomain "folio/internal/modules/pages/domain"
	pagesout "folio/internal/modules/pages/port/out"
	pagesservice "folio/internal/modules/pages/service"
	pagesusecase "folio/internal/modules/pages/usecase"
	"folio/internal/platform/clock"
	"folio/internal/platform/config"
	"folio/internal/platform/id"
	"folio/internal/platform/logging"
	"folio/internal/platform/metrics"
	uiapp "folio/internal/ui/app"
)

type App struct {
	Config  config.Config
	Session string

	PagesCLI     pagesinadapter.CLIHandler
	PagesTUI     pagesinadapter.TUIHandler
	NavigatorCLI navinadapter.CLIHandler
	NavigatorTUI navinadapter.TUIHandler

	logger  zerolog.Logger
	closers []io.Closer
}

// New wires a headless viewer. Transitions complete instantly and nothing is
// drawn.
func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	return build(cfg, logger, navoutadapter.NewInstantAnimator(), navoutadapter.NewSinkPresenter(nil, nil))
}

// NewInteractive wires a viewer whose frames, states and progress reach the
// terminal UI through relay.
func NewInteractive(cfg config.Config, logger zerolog.Logger, relay *uiapp.Relay) (*App, error) {
	return build(cfg, logger,
		navoutadapter.NewTweenAnimator(relay.Frame, navoutadapter.DefaultFrameInterval),
		navoutadapter.NewSinkPresenter(relay.State, relay.Progress),
	)
}

func build(cfg config.Config, logger zerolog.Logger, animator navout.Animator, presenter navout.Presenter) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var ids id.Generator = id.UUID{}
	session := ids.New()
	logger = logger.With().Str("session", session).Logger()

	app := &App{Config: cfg, Session: session, logger: logger}
	client := newPageClient()
	locate := locatorFor(cfg.Source)

	var (
		discoverer pagesout.Discoverer
		loader     pagesout.Loader
	)
	switch cfg.Source.Kind {
	case config.KindPDF:
		doc := pagesoutadapter.NewPDFDocument(cfg.Source.Base, client)
		app.closers = append(app.closers, doc)
		loader = doc
		if cfg.Source.Discovery == config.DiscoveryFixed {
			discoverer = pagesservice.NewFixedDiscoverer(cfg.Source.Total)
		} else {
			discoverer = pagesservice.NewDocumentDiscoverer(doc)
		}
	case config.KindImages:
		prober, imageLoader := pagesoutadapter.NewFileProber(), pagesoutadapter.NewFileImageLoader()
		if cfg.Source.IsRemote() {
			prober, imageLoader = pagesoutadapter.NewHTTPProber(client), pagesoutadapter.NewHTTPImageLoader(client)
		}
		loader = imageLoader
		if cfg.Source.Discovery == config.DiscoveryFixed {
			discoverer = pagesservice.NewFixedDiscoverer(cfg.Source.Total)
		} else {
			discoverer = pagesservice.NewProbeDiscoverer(prober, locate, cfg.Source.MaxProbe)
		}
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Source.Kind)
	}

	store := pagesservice.NewPageStore(
		discoverer,
		loader,
		pagesoutadapter.NewMemorySurface(),
		locate,
		clock.SystemClock{},
		logging.Component(logger, "pages"),
	)
	pagesUC := pagesusecase.NewInteractor(store)

	ctrl := navservice.NewController(
		navoutadapter.NewPagesAdapter(pagesUC),
		animator,
		presenter,
		navservice.Config{
			Eager:          cfg.Viewer.Eager,
			Window:         cfg.Viewer.Window,
			Transition:     cfg.Viewer.Transition,
			SwipeThreshold: float64(cfg.Viewer.SwipeThreshold),
		},
		logging.Component(logger, "navigator"),
	)
	navUC := navusecase.NewInteractor(ctrl)

	app.PagesCLI = pagesinadapter.NewCLIHandler(pagesUC)
	app.PagesTUI = pagesinadapter.NewTUIHandler(pagesUC)
	app.NavigatorCLI = navinadapter.NewCLIHandler(navUC)
	app.NavigatorTUI = navinadapter.NewTUIHandler(navUC)
	return app, nil
}

func locatorFor(src config.SourceConfig) pagesdomain.Locator {
	if src.Kind == config.KindPDF {
		return pagesdomain.DocumentLocator(src.Base)
	}
	return pagesdomain.NewPatternLocator(src.Base, src.Pattern)
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// RunTUI runs the slide viewer until the user quits. The metrics endpoint,
// when configured, lives as long as the program.
func RunTUI(ctx context.Context, app *App, relay *uiapp.Relay) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := app.Config.Metrics.Addr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr); err != nil {
				app.logger.Error().Err(err).Str("addr", addr).Msg("metrics endpoint stopped")
			}
		}()
	}

	model := uiapp.NewModel(app.Config.Source.Base, app.Session, app.NavigatorTUI, app.PagesTUI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	relay.Attach(program)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// newPageClient serves probes, page loads and PDF fetches. Loads carry no
// deadline and run until they settle, so the client sets no timeout.
func newPageClient() *http.Client {
	return &http.Client{Transport: http.DefaultTransport}
}
