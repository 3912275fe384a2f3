package publish

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pencilcase/confluence-status/confluence"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// Outcome classifies what happened to a single page during a run.
type Outcome int

const (
	Updated Outcome = iota
	SkippedMarker
	WouldUpdate
	FetchFailed
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case SkippedMarker:
		return "already stamped"
	case WouldUpdate:
		return "would update"
	case FetchFailed:
		return "fetch failed"
	case WriteFailed:
		return "write failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// PageResult records the fate of one page.
type PageResult struct {
	ID      string
	Title   string
	Outcome Outcome

	// NewVersion is the version the page was written at, for Updated pages.
	NewVersion int

	// Err holds the absorbed error for FetchFailed and WriteFailed pages.
	Err error
}

// Report aggregates the per-page results of one run.
type Report struct {
	SpaceKey string
	Results  []PageResult
}

func (r Report) Count(outcome Outcome) int {
	n := 0
	for _, result := range r.Results {
		if result.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failed reports whether any page write failed.  Fetch failures don't count:
// an unfetchable page is skipped, the same as one that already carries the
// banner.
func (r Report) Failed() bool {
	return r.Count(WriteFailed) > 0
}

// Publisher stamps a status banner onto every page of a space that doesn't
// already carry it.  The zero value plus an API client is usable: the
// built-in banner and marker apply, and pages are processed one at a time.
type Publisher struct {
	API *confluence.API

	// Banner is prepended to each page; empty means the built-in StatusBlock.
	// Marker is the substring that identifies an already-stamped page; empty
	// means the built-in Marker.
	Banner string
	Marker string

	// Message is recorded against each new page version.
	Message string

	// Workers sets how many pages are processed concurrently.  A page's
	// fetch-then-write pair always stays inside a single worker, so the skip
	// decision is made from the same body that's about to be overwritten.
	Workers int

	// DryRun reports what would change without issuing any writes.
	DryRun bool

	// Logger receives per-page progress lines; nil silences them.
	Logger   *log.Logger
	loggerMu sync.Mutex

	// ProgressOutput is where the progress bar renders; nil disables it.
	ProgressOutput io.Writer
}

// Run lists the pages of spaceKey and processes each one exactly once.
//
// Every per-page error is absorbed into the page's PageResult; Run itself
// only errors on misconfiguration or context cancellation.  A listing
// failure degrades the whole run to a no-op with an empty report, since
// without the listing there is nothing to process.
func (p *Publisher) Run(ctx context.Context, spaceKey string) (Report, error) {
	report := Report{SpaceKey: spaceKey}

	if p.API == nil {
		return report, fmt.Errorf("publish: no API client configured")
	}
	if spaceKey == "" {
		return report, fmt.Errorf("publish: space key is empty")
	}

	pages, err := p.API.ListAllContent(ctx, confluence.ContentQuery{
		SpaceKey: spaceKey,
		Type:     "page",
		Limit:    100,
	})
	if err != nil {
		p.logf("Couldn't list pages in space %s: %v", spaceKey, err)
		return report, nil
	}

	// The union of listing pages shouldn't contain duplicates, but a page
	// must never be stamped twice in one run, so index by ID regardless.
	byID := map[string]confluence.Content{}
	for _, page := range pages {
		byID[page.ID] = page
	}
	todo := maps.Values(byID)
	sort.Slice(todo, func(i, j int) bool { return todo[i].ID < todo[j].ID })

	p.logf("Found %d pages in space %s.", len(todo), spaceKey)

	report.Results, err = p.processAll(ctx, todo)
	if err != nil {
		return report, fmt.Errorf("publish: run aborted: %w", err)
	}

	return report, nil
}

func (p *Publisher) processAll(ctx context.Context, todo []confluence.Content) ([]PageResult, error) {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan confluence.Content)
	results := make(chan PageResult, workers)

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		defer close(jobs)
		for _, page := range todo {
			select {
			case jobs <- page:
			case <-gctx.Done():
				return context.Cause(gctx)
			}
		}
		return nil
	})

	workersLeft := int32(workers)
	for i := 0; i < workers; i++ {
		grp.Go(func() error {
			defer func() {
				// Last one out closes the shop
				if atomic.AddInt32(&workersLeft, -1) == 0 {
					close(results)
				}
			}()
			for {
				select {
				case page, ok := <-jobs:
					if !ok {
						return nil
					}
					result := p.processPage(gctx, page)
					select {
					case results <- result:
					case <-gctx.Done():
						return context.Cause(gctx)
					}
				case <-gctx.Done():
					return context.Cause(gctx)
				}
			}
		})
	}

	progressOut := p.ProgressOutput
	if progressOut == nil {
		progressOut = io.Discard
	}
	progress := mpb.New(mpb.WithWidth(64), mpb.WithOutput(progressOut))
	bar := progress.AddBar(int64(len(todo)),
		mpb.PrependDecorators(
			decor.Name("pages:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	collected := make([]PageResult, 0, len(todo))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for result := range results {
			collected = append(collected, result)
			bar.Increment()
		}
	}()

	err := grp.Wait()
	// The results channel is closed once every worker has exited, so the
	// collector terminates on the error path too.
	<-done
	bar.Abort(true)
	progress.Wait()

	if err != nil {
		return collected, err
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].ID < collected[j].ID })
	return collected, nil
}

// processPage runs one page through the whole fetch -> guard -> compose ->
// write pipeline.  Failures are folded into the returned PageResult, never
// escalated: one broken page must not block the others.
func (p *Publisher) processPage(ctx context.Context, summary confluence.Content) PageResult {
	result := PageResult{
		ID:    summary.ID,
		Title: summary.Title,
	}

	page, err := p.API.GetContentByID(ctx, summary.ID, confluence.GetContentByIDQuery{
		Expand: []string{"body.storage", "version", "space"},
	})
	if err != nil {
		p.logf("Couldn't fetch page %s (%s): %v", summary.Title, summary.ID, err)
		result.Outcome = FetchFailed
		result.Err = err
		return result
	}
	if page.Version == nil {
		err := fmt.Errorf("publish: page %s has no version information", page.ID)
		p.logf("Couldn't fetch page %s (%s): %v", summary.Title, summary.ID, err)
		result.Outcome = FetchFailed
		result.Err = err
		return result
	}

	result.Title = page.Title
	body := page.Body.Storage.Value

	if strings.Contains(body, p.marker()) {
		p.logf("Skipping %s (already has banner).", page.Title)
		result.Outcome = SkippedMarker
		return result
	}

	if p.DryRun {
		p.logf("Would update %s (v%d).", page.Title, page.Version.Number)
		result.Outcome = WouldUpdate
		return result
	}

	update := confluence.UpdateContentRequest{
		Version: confluence.Version{
			Number:  page.Version.Number + 1,
			Message: p.Message,
		},
		Title: page.Title,
		Type:  "page",
		Body: confluence.Body{
			Storage: confluence.Storage{
				Value:          Compose(p.banner(), body),
				Representation: "storage",
			},
		},
	}

	if _, err := p.API.UpdateContent(ctx, page.ID, update); err != nil {
		p.logf("Couldn't update page %s (%s): %v", page.Title, page.ID, err)
		result.Outcome = WriteFailed
		result.Err = err
		return result
	}

	result.Outcome = Updated
	result.NewVersion = page.Version.Number + 1
	p.logf("Updated %s: v%d -> v%d.", page.Title, page.Version.Number, result.NewVersion)
	return result
}

func (p *Publisher) banner() string {
	if p.Banner != "" {
		return p.Banner
	}
	return StatusBlock
}

func (p *Publisher) marker() string {
	if p.Marker != "" {
		return p.Marker
	}
	return Marker
}

func (p *Publisher) logf(format string, args ...any) {
	if p.Logger == nil {
		return
	}
	p.loggerMu.Lock()
	defer p.loggerMu.Unlock()
	p.Logger.Printf(format+"\n", args...)
}
