// Package gw_scraper extracts posts and comments from GreaterWrong, the
// static mirror of LessWrong.
package gw_scraper

import (
	"log"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/caffix/cloudflare-roundtripper/cfrt"
	"github.com/gocolly/colly"
	"golang.org/x/net/html"
)

// BaseURL is the GreaterWrong mirror root. The listing at /?offset=N pages
// through every post on the site.
const BaseURL = "https://www.greaterwrong.com"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func newCollectorWithCFRoundtripper() *colly.Collector {
	collector := colly.NewCollector(
		colly.IgnoreRobotsTxt(),
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	transport, err :=
		cfrt.New(&http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   15 * time.Second,
				KeepAlive: 15 * time.Second,
				DualStack: true,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		})
	if err != nil {
		log.Fatal(err)
	}
	collector.WithTransport(transport)
	return collector
}

var (
	wsLinePat = regexp.MustCompile("\n[ \t]+\n")
	nlPat     = regexp.MustCompile("\n\n+")
)

// cleanText normalizes scraped body text: non-breaking spaces become regular
// spaces, whitespace-only lines and repeated newlines collapse, and leading
// and trailing newlines are trimmed.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = wsLinePat.ReplaceAllString(s, "\n")
	s = nlPat.ReplaceAllString(s, "\n")
	s = strings.Trim(s, "\n")
	return strings.TrimSpace(s)
}

// textWithoutBlockquotes returns the text of sel with blockquote subtrees
// skipped, so a comment that quotes its parent does not duplicate the
// parent's words.
func textWithoutBlockquotes(sel *goquery.Selection) string {
	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		return sel.Text()
	}
	doc, err := html.Parse(strings.NewReader(outer))
	if err != nil {
		return sel.Text()
	}
	var text strings.Builder
	var collectText func(*html.Node)
	collectText = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "blockquote" {
			return
		}
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(c)
		}
	}
	collectText(doc)
	return text.String()
}
