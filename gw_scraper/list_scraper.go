package gw_scraper

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gocolly/colly"
)

// PostRef is one entry in the site's post listing.
type PostRef struct {
	Title string
	URL   string
}

// ListScraper fetches listing pages at /?offset=N and returns the post links
// found there, in page order. A not-found listing page is reported as an
// empty page, not an error, since that is how the site signals the end of
// the list.
type ListScraper struct {
	baseURL   string
	collector *colly.Collector
	refs      []PostRef
	notFound  bool
	fetchErr  error
}

func NewListScraper(baseURL string) *ListScraper {
	ls := new(ListScraper)
	ls.baseURL = strings.TrimRight(baseURL, "/")
	ls.collector = newCollectorWithCFRoundtripper()

	ls.collector.OnHTML("h1 a[href], h2 a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if !strings.Contains(href, "/posts/") {
			return
		}
		ls.refs = append(ls.refs, PostRef{
			Title: strings.TrimSpace(e.Text),
			URL:   e.Request.AbsoluteURL(href),
		})
	})

	ls.collector.OnRequest(func(r *colly.Request) {
		log.Printf("ListScraper visiting %s", r.URL.String())
	})

	ls.collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode == http.StatusNotFound {
			ls.notFound = true
			return
		}
		ls.fetchErr = err
	})

	return ls
}

// PostsAtOffset returns the posts listed at the given offset. An empty slice
// with a nil error means the page held no posts.
func (ls *ListScraper) PostsAtOffset(offset int) ([]PostRef, error) {
	ls.refs = nil
	ls.notFound = false
	ls.fetchErr = nil

	listURL := fmt.Sprintf("%s/?offset=%d", ls.baseURL, offset)
	visitErr := ls.collector.Visit(listURL)
	if ls.notFound {
		return nil, nil
	}
	if ls.fetchErr != nil {
		return nil, ls.fetchErr
	}
	if visitErr != nil {
		return nil, visitErr
	}
	return ls.refs, nil
}
