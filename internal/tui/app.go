package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/derailed/tview"
	"github.com/rs/zerolog"

	"github.com/ajramos/bucketui/internal/browser"
	"github.com/ajramos/bucketui/internal/config"
	"github.com/ajramos/bucketui/internal/render"
	"github.com/ajramos/bucketui/internal/services"
	"github.com/ajramos/bucketui/internal/storage"
)

// listTimeout bounds one listing load (objects, buckets and preview URLs)
const listTimeout = 30 * time.Second

// Options are the collaborators and settings of an App
type Options struct {
	Config     *config.Config
	Theme      *config.ColorsConfig
	Storage    services.StorageService
	Thumbnails services.ThumbnailService
	// Previews persists the preview mode. Nil keeps it in memory.
	Previews browser.Preference
	Logger   zerolog.Logger
	// Initial is the first listing to open
	Initial browser.NavRequest
}

// App is the bucket browser screen
type App struct {
	*tview.Application
	Pages *tview.Pages
	views map[string]tview.Primitive

	Config       *config.Config
	Keys         config.KeyBindings
	currentTheme *config.ColorsConfig
	colorer      *render.ListingColorer

	storage    services.StorageService
	thumbnails services.ThumbnailService
	previews   browser.Preference

	ctx          context.Context
	cancel       context.CancelFunc
	logger       zerolog.Logger
	errorHandler *ErrorHandler

	// queue runs fn on the UI goroutine and returns once it has run
	queue func(fn func())

	initial browser.NavRequest

	// Current page. Everything below is owned by the UI goroutine.
	generation  uint64
	loading     bool
	page        *browser.Page
	controllers *browser.Controllers
	listing     *services.Listing
	buckets     []services.BucketSummary
	rows        []listRow
	thumbs      map[string]string
	helpVisible bool
}

// NewApp creates the application and its widgets. Nothing is loaded until Run.
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		Application: tview.NewApplication(),
		Pages:       tview.NewPages(),
		views:       make(map[string]tview.Primitive),
		Config:      cfg,
		Keys:        cfg.Keys,
		colorer:     render.NewListingColorer(),
		storage:     opts.Storage,
		thumbnails:  opts.Thumbnails,
		previews:    opts.Previews,
		ctx:         ctx,
		cancel:      cancel,
		logger:      opts.Logger,
		initial:     opts.Initial,
		thumbs:      make(map[string]string),
	}
	a.queue = func(fn func()) { a.QueueUpdateDraw(fn) }

	a.applyTheme(opts.Theme)
	a.initComponents()
	a.initViews()

	status, _ := a.views["status"].(*tview.TextView)
	a.errorHandler = NewErrorHandler(func(fn func()) { a.queue(fn) }, a, status, a.logger.With().Str("component", "status").Logger())

	a.bindKeys()
	return a
}

// Run opens the initial listing and blocks until the user quits
func (a *App) Run() error {
	defer a.cancel()

	a.SetRoot(a.Pages, true)
	a.navigate(a.initial)

	return a.Application.Run()
}

// navigate starts loading req. Results of earlier loads still in flight are dropped.
func (a *App) navigate(req browser.NavRequest) {
	a.generation++
	gen := a.generation
	a.loading = true

	a.logger.Debug().
		Uint64("generation", gen).
		Str("source", req.Source).
		Str("bucket", req.Bucket).
		Str("prefix", req.Prefix).
		Bool("paged", req.TokenStack != "").
		Msg("navigate")

	a.errorHandler.ShowProgress(a.ctx, fmt.Sprintf("Loading %s…", describeRequest(req)))
	go a.loadPage(gen, req)
}

// pageLoad is the outcome of one listing load
type pageLoad struct {
	listing  *services.Listing
	buckets  []services.BucketSummary
	previews map[string]string
	err      error
}

// loadPage fetches everything a page needs off the UI goroutine
func (a *App) loadPage(gen uint64, req browser.NavRequest) {
	ctx, cancel := context.WithTimeout(a.ctx, listTimeout)
	defer cancel()

	var load pageLoad
	load.listing, load.err = a.storage.ListObjects(ctx, services.ListRequest{
		Source:     req.Source,
		Bucket:     req.Bucket,
		Prefix:     req.Prefix,
		TokenStack: req.TokenStack,
	})
	if load.err == nil {
		load.buckets = a.loadBuckets(ctx, load.listing)
		load.previews = a.loadPreviewURLs(ctx, load.listing)
	}

	a.queue(func() { a.applyPage(gen, load) })
}

func (a *App) loadBuckets(ctx context.Context, listing *services.Listing) []services.BucketSummary {
	buckets, err := a.storage.ListBuckets(ctx, listing.Source)
	if err != nil {
		a.logger.Warn().Err(err).Str("source", listing.Source).Msg("bucket listing failed")
		buckets = nil
	}
	for _, b := range buckets {
		if b.Name == listing.Bucket {
			return buckets
		}
	}
	return append(buckets, services.BucketSummary{Name: listing.Bucket})
}

func (a *App) loadPreviewURLs(ctx context.Context, listing *services.Listing) map[string]string {
	urls := make(map[string]string)
	for _, obj := range listing.Objects {
		if !obj.Previewable {
			continue
		}
		url, err := a.storage.PreviewURL(ctx, listing.Source, listing.Bucket, obj.Key)
		if err != nil {
			a.logger.Warn().Err(err).Str("key", obj.Key).Msg("preview url failed")
			continue
		}
		urls[obj.Key] = url
	}
	return urls
}

// applyPage installs a finished load if it still belongs to the latest navigation
func (a *App) applyPage(gen uint64, load pageLoad) {
	if gen != a.generation {
		a.logger.Debug().Uint64("generation", gen).Uint64("current", a.generation).Msg("dropping stale listing")
		return
	}
	a.loading = false
	a.errorHandler.ClearProgress()

	if load.err != nil {
		a.errorHandler.ShowStorageError(a.ctx, "listing", load.err, keyLabel(a.Keys.Refresh, "R"))
		a.restoreNavigation()
		a.renderPage()
		return
	}

	a.showListing(load.listing, load.buckets, load.previews)
}

// showListing replaces the current page with a fresh one built from listing
func (a *App) showListing(listing *services.Listing, buckets []services.BucketSummary, previews map[string]string) {
	gen := a.generation
	page, rows := a.buildPage(listing, a.storage.ListSources(), buckets, previews)

	a.thumbs = make(map[string]string)
	a.hookPreviews(gen, page)

	a.page = page
	a.rows = rows
	a.listing = listing
	a.buckets = buckets
	a.controllers = browser.Bootstrap(page, browser.Deps{
		Previews:  a.previews,
		Scheduler: browser.SchedulerFunc(a.deferUpdate),
		Logger:    a.logger,
	})

	a.renderPage()
	if table, ok := a.views["list"].(*tview.Table); ok {
		table.Select(1, 0)
		table.ScrollToBeginning()
	}
	a.renderPreview()
}

// deferUpdate runs fn on a later turn of the UI goroutine
func (a *App) deferUpdate(fn func()) {
	go a.queue(func() {
		fn()
		a.renderHeader()
	})
}

// restoreNavigation puts the form of the current page back in line with its listing
// after a navigation failed
func (a *App) restoreNavigation() {
	if a.page == nil || a.page.Nav == nil || a.listing == nil {
		return
	}
	nav := a.page.Nav
	if nav.Source != nil {
		nav.Source.Value = a.listing.Source
		nav.Source.Disabled = false
	}
	if nav.Bucket != nil {
		nav.Bucket.Value = a.listing.Bucket
		nav.Bucket.Disabled = false
	}
	if nav.Prefix != nil {
		nav.Prefix.Value = a.listing.Prefix
	}
	if nav.TokenStack != nil {
		nav.TokenStack.Value = a.listing.CurrentStack
	}
}

// hookPreviews starts a thumbnail fetch whenever an image of page gets its source
func (a *App) hookPreviews(gen uint64, page *browser.Page) {
	for _, slot := range page.Previews {
		key := slot.Key
		slot.Image.OnSource(func(src string) {
			a.fetchThumbnail(gen, key, src)
		})
	}
}

// fetchThumbnail downloads and renders one preview image
func (a *App) fetchThumbnail(gen uint64, key, src string) {
	if src == "" || a.thumbnails == nil {
		a.thumbs[key] = "preview unavailable"
		return
	}
	a.thumbs[key] = "loading preview…"
	cols, rows := a.thumbnailSize()

	go func() {
		img, err := a.thumbnails.Fetch(a.ctx, src)
		var out string
		if err != nil {
			a.logger.Warn().Err(err).Str("key", key).Msg("thumbnail fetch failed")
			out = thumbnailErrorText(err)
		} else {
			out = render.Thumbnail(img, cols, rows)
		}

		a.queue(func() {
			if gen != a.generation {
				return
			}
			a.thumbs[key] = out
			a.renderPreview()
		})
	}()
}

// pageNumber is the 1-based position of the current listing page
func (a *App) pageNumber() int {
	if a.listing == nil {
		return 1
	}
	tokens, err := storage.DecodeTokenStack(a.listing.CurrentStack)
	if err != nil {
		return 1
	}
	return len(tokens) + 1
}

func describeRequest(req browser.NavRequest) string {
	switch {
	case req.Bucket != "" && req.Prefix != "":
		return req.Bucket + "/" + req.Prefix
	case req.Bucket != "":
		return req.Bucket
	case req.Source != "":
		return req.Source
	default:
		return "listing"
	}
}
