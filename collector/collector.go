package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/YuamLu/LessWrong-scraper/gw_scraper"
	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/YuamLu/LessWrong-scraper/progress"
	"golang.org/x/time/rate"
)

const (
	// Consecutive listing pages without a single post link before the run
	// is considered complete.
	maxEmptyPages = 3

	// Offset increment used when a listing page yields no posts.
	defaultPageStep = 10
)

// Locator resolves the site's ordered post listing one page at a time.
type Locator interface {
	PostsAtOffset(offset int) ([]gw_scraper.PostRef, error)
}

// Fetcher turns a post URL into an archive record.
type Fetcher interface {
	ScrapePost(url string) (model.Post, error)
}

// Store is the persistence surface the collector needs. Satisfied by
// *store.ArchiveStore.
type Store interface {
	Cursor() int
	Len() int
	Pending() int
	Contains(url string) bool
	AddPost(p model.Post) (bool, error)
	Flush(lastOffset int) error
}

type Config struct {
	// StartOffset overrides the resume cursor when non-negative.
	StartOffset int
	// MaxOffset stops the run once reached; zero means unlimited.
	MaxOffset int
	// Delay is the pause enforced between consecutive fetches.
	Delay time.Duration
	// BatchSize is the flush cadence in appended posts.
	BatchSize int
	// HaltOnError stops the run on the first transport failure instead of
	// skipping the post.
	HaltOnError bool
}

// Collector walks the post listing from a starting offset, fetching each new
// post and appending it to the store, flushing every BatchSize posts and at
// termination. One loop, no concurrency.
type Collector struct {
	cfg     Config
	locator Locator
	fetcher Fetcher
	store   Store
	limiter *rate.Limiter
	bar     *progress.Bar
}

func NewCollector(cfg Config, locator Locator, fetcher Fetcher, store Store, bar *progress.Bar) *Collector {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	c := &Collector{
		cfg:     cfg,
		locator: locator,
		fetcher: fetcher,
		store:   store,
		bar:     bar,
	}
	if cfg.Delay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return c
}

// Run drives the collect loop until the maximum offset, the end of the
// listing, or context cancellation. Whatever happened, the buffer is flushed
// before returning, so the archive on disk is the resumable checkpoint.
func (c *Collector) Run(ctx context.Context) (err error) {
	offset := c.cfg.StartOffset
	if offset < 0 {
		offset = c.store.Cursor()
	}

	defer func() {
		if flushErr := c.store.Flush(offset); flushErr != nil && err == nil {
			err = flushErr
		}
		c.bar.Close()
	}()

	c.bar.SetSaved(c.store.Cursor())

	emptyPages := 0
	for {
		if ctx.Err() != nil {
			c.bar.Logf("Interrupted. Progress saved through the last flush.")
			return nil
		}
		if c.cfg.MaxOffset > 0 && offset >= c.cfg.MaxOffset {
			c.bar.Logf("Reached maximum offset %d. Stopping.", c.cfg.MaxOffset)
			return nil
		}

		refs, locateErr := c.locator.PostsAtOffset(offset)
		if locateErr != nil {
			if c.cfg.HaltOnError {
				return fmt.Errorf("listing at offset %d: %w", offset, locateErr)
			}
			c.bar.Logf("Listing failed at offset %d: %v", offset, locateErr)
			offset += defaultPageStep
			continue
		}

		if len(refs) == 0 {
			emptyPages++
			c.bar.Logf("No posts at offset %d (%d empty in a row)", offset, emptyPages)
			if emptyPages >= maxEmptyPages {
				c.bar.Logf("Found %d consecutive empty pages. Scraping complete.", maxEmptyPages)
				return nil
			}
			offset += defaultPageStep
			continue
		}
		emptyPages = 0

		for _, ref := range refs {
			if ctx.Err() != nil {
				c.bar.Logf("Interrupted. Progress saved through the last flush.")
				return nil
			}
			if c.store.Contains(ref.URL) {
				log.Printf("Skipping already scraped post: %s", ref.URL)
				continue
			}
			if waitErr := c.wait(ctx); waitErr != nil {
				return nil
			}

			post, fetchErr := c.fetcher.ScrapePost(ref.URL)
			if fetchErr != nil {
				if c.cfg.HaltOnError {
					return fmt.Errorf("fetching %s: %w", ref.URL, fetchErr)
				}
				c.bar.Logf("Fetch failed for %s: %v", ref.URL, fetchErr)
				continue
			}

			added, addErr := c.store.AddPost(post)
			if addErr != nil {
				return addErr
			}
			if !added {
				continue
			}
			c.bar.Advance(post.Title)

			if c.store.Pending() >= c.cfg.BatchSize {
				if flushErr := c.store.Flush(offset); flushErr != nil {
					return flushErr
				}
				c.bar.SetSaved(c.store.Cursor())
				c.bar.Logf("Progress saved. Total posts: %d", c.store.Len())
			}
		}

		offset += len(refs)
	}
}

// ScrapeOne collects exactly one post, bypassing pagination.
func (c *Collector) ScrapeOne(ctx context.Context, postURL string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	post, err := c.fetcher.ScrapePost(postURL)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", postURL, err)
	}
	if _, err := c.store.AddPost(post); err != nil {
		return err
	}
	if err := c.store.Flush(c.store.Len()); err != nil {
		return err
	}
	c.bar.SetSaved(c.store.Cursor())
	return nil
}

func (c *Collector) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
