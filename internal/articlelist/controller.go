// Package articlelist derives a page of articles and the page numbers for a
// pagination bar from a query config and a current page number.
package articlelist

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/reactive"
	"github.com/siahsang/conduit/models"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadStateLoading:
		return "loading"
	case LoadStateLoaded:
		return "loaded"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var ErrClosed = xerrors.Message("Controller closed")

type Querier interface {
	QueryArticles(ctx context.Context, config filter.ArticleListConfig) (*models.ArticlePage, error)
}

// Controller recomputes its outputs whenever the config or the current page
// changes. A newer derivation cancels the one in flight, and a superseded
// derivation never publishes.
type Controller struct {
	log     *slog.Logger
	querier Querier
	limit   int

	config      *reactive.Cell[*filter.ArticleListConfig]
	currentPage *reactive.Cell[int]

	articles   *reactive.Cell[[]*models.Article]
	totalPages *reactive.Cell[[]int]
	loading    *reactive.Cell[LoadState]
	err        *reactive.Cell[error]

	mutex     sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	settled   chan struct{}
	isSettled bool
	closed    bool
	// set by a config change until a derivation of it has queried
	configDirty bool

	// serializes publication so outputs of one derivation are never
	// interleaved with another's.
	publishMutex sync.Mutex
	wg           sync.WaitGroup
	stops        []func()
}

// New returns a controller showing limit articles per page. A limit of 0
// disables querying.
func New(log *slog.Logger, querier Querier, limit int) *Controller {
	c := &Controller{
		log:         log,
		querier:     querier,
		limit:       limit,
		config:      reactive.NewCell[*filter.ArticleListConfig](nil),
		currentPage: reactive.NewCell(1),
		articles:    reactive.NewCell([]*models.Article{}),
		totalPages:  reactive.NewDistinctCell([]int{}, slices.Equal[[]int]),
		loading:     reactive.NewDistinctCell(LoadStateLoading, reactive.Distinct[LoadState]),
		err:         reactive.NewCell[error](nil),
		settled:     make(chan struct{}),
	}

	c.stops = append(c.stops,
		c.config.Subscribe(func(*filter.ArticleListConfig) { c.derive(true) }),
		c.currentPage.Subscribe(func(int) { c.derive(false) }),
	)
	return c
}

// SetConfig replaces the query and goes back to the first page.
func (c *Controller) SetConfig(config *filter.ArticleListConfig) {
	if config != nil {
		copied := *config
		config = &copied
	}
	c.config.Set(config)
	c.SetPageTo(1)
}

// SetPageTo moves to page n. n is not checked against the page count; a page
// past the end shows no articles.
func (c *Controller) SetPageTo(n int) {
	c.currentPage.Set(n)
}

func (c *Controller) Config() reactive.Signal[*filter.ArticleListConfig] { return c.config }
func (c *Controller) CurrentPage() reactive.Signal[int]                 { return c.currentPage }
func (c *Controller) Articles() reactive.Signal[[]*models.Article]      { return c.articles }
func (c *Controller) TotalPages() reactive.Signal[[]int]                { return c.totalPages }
func (c *Controller) Loading() reactive.Signal[LoadState]               { return c.loading }
func (c *Controller) Err() reactive.Signal[error]                       { return c.err }

// Wait blocks until the latest derivation has published its outputs.
func (c *Controller) Wait(ctx context.Context) error {
	c.mutex.Lock()
	settled, closed := c.settled, c.closed
	c.mutex.Unlock()
	if closed {
		return xerrors.New(ErrClosed)
	}

	select {
	case <-settled:
		c.mutex.Lock()
		defer c.mutex.Unlock()
		if c.closed {
			return xerrors.New(ErrClosed)
		}
		return nil
	case <-ctx.Done():
		return xerrors.New(ctx.Err())
	}
}

// Close cancels the derivation in flight and waits for it to return. It
// must not be called from an observer of the controller's outputs.
func (c *Controller) Close() {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.markSettled()
	stops := c.stops
	c.mutex.Unlock()

	for _, stop := range stops {
		stop()
	}
	c.wg.Wait()
}

func (c *Controller) derive(configChanged bool) {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	if c.isSettled {
		c.settled = make(chan struct{})
		c.isSettled = false
	}
	c.configDirty = c.configDirty || configChanged
	showLoading := c.configDirty
	config, page := c.config.Get(), c.currentPage.Get()
	c.wg.Add(1)
	c.mutex.Unlock()

	// Flip to loading right away unless a publication is in progress, in
	// which case run does it once the publisher is done.
	if showLoading && c.publishMutex.TryLock() {
		publish(c, gen, c.loading, LoadStateLoading)
		c.publishMutex.Unlock()
	}

	go c.run(ctx, gen, config, page, showLoading)
}

func (c *Controller) run(ctx context.Context, gen uint64, config *filter.ArticleListConfig, page int, showLoading bool) {
	defer c.wg.Done()

	if showLoading {
		c.publishMutex.Lock()
		publish(c, gen, c.loading, LoadStateLoading)
		c.publishMutex.Unlock()
	}

	var (
		result *models.ArticlePage
		err    error
	)
	active := config != nil && c.limit > 0
	if active {
		result, err = c.querier.QueryArticles(ctx, config.WithPage(c.limit, page))
	}

	c.publishMutex.Lock()
	defer c.publishMutex.Unlock()

	// Every output is published only while gen is still the latest
	// derivation. An observer may start a newer one mid-publication.
	var published bool
	switch {
	case !active:
		published = publish(c, gen, c.articles, []*models.Article{}) &&
			publish(c, gen, c.totalPages, []int{}) &&
			publish(c, gen, c.err, nil)
	case err != nil:
		c.log.Error("Failed to query articles", "page", page, "error", err)
		published = publish(c, gen, c.articles, []*models.Article{}) &&
			publish(c, gen, c.err, err) &&
			publish(c, gen, c.loading, LoadStateFailed)
	default:
		published = publish(c, gen, c.articles, result.Articles) &&
			publish(c, gen, c.totalPages, PageNumbers(result.ArticlesCount, c.limit)) &&
			publish(c, gen, c.err, nil) &&
			publish(c, gen, c.loading, LoadStateLoaded)
	}

	c.mutex.Lock()
	if published && gen == c.gen && !c.closed {
		if active {
			c.configDirty = false
		}
		c.markSettled()
	}
	c.mutex.Unlock()
}

// publish sets cell to v if gen is still the latest derivation and reports
// whether it still is.
func publish[T any](c *Controller, gen uint64, cell *reactive.Cell[T], v T) bool {
	if cell.SetIf(v, func() bool { return c.isCurrent(gen) }) {
		return true
	}
	return c.isCurrent(gen)
}

func (c *Controller) isCurrent(gen uint64) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return !c.closed && gen == c.gen
}

// markSettled must be called with c.mutex held.
func (c *Controller) markSettled() {
	if !c.isSettled {
		close(c.settled)
		c.isSettled = true
	}
}

// PageNumbers returns 1..ceil(count/limit), or an empty slice when limit is
// not positive.
func PageNumbers(count, limit int) []int {
	if limit <= 0 || count <= 0 {
		return []int{}
	}
	total := (count + limit - 1) / limit
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
