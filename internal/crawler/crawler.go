package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"subslikescript-crawler/internal/dataset"
	"subslikescript-crawler/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// Crawler walks the listing pages and writes batch files
type Crawler struct {
	Client   *http.Client
	Config   Config
	Throttle Throttle
	Log      logrus.FieldLogger

	base   *url.URL
	robots *robotstxt.RobotsData
}

// Summary counts what a run did
type Summary struct {
	Pages           int
	ListingFailures int
	Movies          int
	MovieFailures   int
	Skipped         int
	Files           []string
}

// NewCrawler creates a new crawler instance
func NewCrawler(cfg Config) (*Crawler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if base.Path == "" {
		base.Path = "/"
	}

	client, err := NewHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Crawler{
		Client:   client,
		Config:   cfg,
		Throttle: NewThrottle(cfg),
		Log:      logrus.StandardLogger(),
		base:     base,
	}, nil
}

// Run crawls pages StartPage..EndPage in order. Records are flushed to a
// new batch file every PagesPerFile pages and after EndPage. Per-page and
// per-movie failures are logged and skipped; only filesystem errors and
// context cancellation end the run early.
func (c *Crawler) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	cfg := c.Config

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("create output directory: %w", err)
	}
	if cfg.ProxyURL != "" {
		c.Log.Infof("Using proxy: %s", cfg.ProxyURL)
	}
	if cfg.RespectRobots {
		c.loadRobots(ctx)
	}

	var records []models.Record
	windowStart := cfg.StartPage

	for page := cfg.StartPage; page <= cfg.EndPage; page++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		pageRecords, err := c.scrapePage(ctx, page, &sum)
		if err != nil {
			return sum, err
		}
		records = append(records, pageRecords...)
		sum.Pages++

		if err := c.Throttle.Wait(ctx); err != nil {
			return sum, err
		}

		if page%cfg.PagesPerFile == 0 || page == cfg.EndPage {
			batch := dataset.Batch{StartPage: windowStart, EndPage: page}
			path := filepath.Join(cfg.OutputDir, batch.FileName())
			if err := dataset.WriteJSONL(path, records); err != nil {
				return sum, fmt.Errorf("write batch %s: %w", path, err)
			}
			c.Log.WithFields(logrus.Fields{"file": path, "records": len(records)}).Info("Saved batch")
			sum.Files = append(sum.Files, path)
			records = nil
			windowStart = page + 1
		}
	}

	c.Log.Info("Scraping and saving completed.")
	return sum, nil
}

// scrapePage fetches one listing page and every movie it links to.
// The returned error is non-nil only when ctx is done.
func (c *Crawler) scrapePage(ctx context.Context, page int, sum *Summary) ([]models.Record, error) {
	pageURL := c.ListingURL(page)
	log := c.Log.WithField("page", page)

	if !c.allowed(pageURL) {
		log.Infof("Skipping %s (disallowed by robots.txt)", pageURL)
		sum.Skipped++
		return nil, nil
	}

	movieURLs, err := c.FetchMovieURLs(ctx, pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		sum.ListingFailures++
		c.logFailure(log, pageURL, err)
		return nil, nil
	}
	if len(movieURLs) == 0 {
		log.Infof("No movies listed on %s", pageURL)
		return nil, nil
	}

	var records []models.Record
	for _, movieURL := range movieURLs {
		if !c.allowed(movieURL) {
			log.Infof("Skipping %s (disallowed by robots.txt)", movieURL)
			sum.Skipped++
			continue
		}

		log.Infof("Parsing transcript for %s", movieURL)
		record, err := c.FetchMovie(ctx, movieURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			sum.MovieFailures++
			c.logFailure(log, movieURL, err)
			continue
		}
		records = append(records, record)
		sum.Movies++
	}
	return records, nil
}

func (c *Crawler) logFailure(log logrus.FieldLogger, target string, err error) {
	log = log.WithField("url", target)
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		log.WithField("status", statusErr.StatusCode).
			Warnf("Failed to retrieve the page. Status code: %d", statusErr.StatusCode)
	case IsExtractionError(err):
		log.Warnf("Failed to extract page: %v", err)
	default:
		log.Warnf("Failed to retrieve the page: %v", err)
	}
}

// loadRobots fetches robots.txt once; failures allow everything
func (c *Crawler) loadRobots(ctx context.Context) {
	robotsURL := c.base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Warnf("Failed to fetch %s, ignoring robots rules: %v", robotsURL, err)
		return
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.Log.Warnf("Failed to parse %s, ignoring robots rules: %v", robotsURL, err)
		return
	}
	c.robots = robots
}

func (c *Crawler) allowed(target string) bool {
	if c.robots == nil {
		return true
	}
	u, err := url.Parse(target)
	if err != nil {
		return true
	}
	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return c.robots.TestAgent(path, c.Config.UserAgent)
}
