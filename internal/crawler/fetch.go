package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"subslikescript-crawler/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	listSelector   = "ul.scripts-list"
	scriptSelector = "div.full-script"
)

// ListingURL returns the URL of a listing page
func (c *Crawler) ListingURL(page int) string {
	u := c.base.JoinPath("movies")
	u.RawQuery = "page=" + strconv.Itoa(page)
	return u.String()
}

// fetchDocument performs a GET and parses the body of a 200 response
func (c *Crawler) fetchDocument(ctx context.Context, targetURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: targetURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", targetURL, err)
	}
	return doc, nil
}

// FetchMovieURLs returns the detail page URLs linked from a listing page, in page order
func (c *Crawler) FetchMovieURLs(ctx context.Context, pageURL string) ([]string, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.movieURLsFromDoc(doc, pageURL)
}

func (c *Crawler) movieURLsFromDoc(doc *goquery.Document, pageURL string) ([]string, error) {
	list := doc.Find(listSelector).First()
	if list.Length() == 0 {
		return nil, &ExtractionError{URL: pageURL, Selector: listSelector}
	}

	urls := []string{}
	list.Find("a").Each(func(i int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			c.Log.Warnf("Skipping malformed link %q on %s: %v", href, pageURL, err)
			return
		}
		urls = append(urls, c.base.ResolveReference(ref).String())
	})
	return urls, nil
}

// FetchMovie scrapes one detail page. A page without a transcript still
// yields a record with a nil Script.
func (c *Crawler) FetchMovie(ctx context.Context, movieURL string) (models.Record, error) {
	doc, err := c.fetchDocument(ctx, movieURL)
	if err != nil {
		return models.Record{}, err
	}

	record := recordFromDoc(doc)

	if err := c.Throttle.Wait(ctx); err != nil {
		return models.Record{}, err
	}
	return record, nil
}

func recordFromDoc(doc *goquery.Document) models.Record {
	var titleYear, script *string

	if ty, ok := ExtractTitleYear(doc.Find("title").First().Text()); ok {
		titleYear = &ty
	}
	if div := doc.Find(scriptSelector).First(); div.Length() > 0 {
		text := div.Text()
		script = &text
	}
	return models.NewRecord(titleYear, script)
}
