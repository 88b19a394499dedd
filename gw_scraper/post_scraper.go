package gw_scraper

import (
	"log"
	"strings"
	"time"

	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/gocolly/colly"
)

// PostScraper extracts a single post page into a model.Post. Missing fields
// degrade to empty strings; only an unreachable page is an error.
type PostScraper struct {
	collector *colly.Collector
	post      model.Post
	fetchErr  error
}

func NewPostScraper() *PostScraper {
	ps := new(PostScraper)
	ps.collector = newCollectorWithCFRoundtripper()

	ps.collector.OnHTML("h1.post-title", func(e *colly.HTMLElement) {
		ps.post.Title = strings.TrimSpace(e.Text)
	})

	ps.collector.OnHTML("div.post-meta a.author", func(e *colly.HTMLElement) {
		ps.post.Author = strings.TrimSpace(e.Text)
	})

	ps.collector.OnHTML("div.post-meta span.date", func(e *colly.HTMLElement) {
		ps.post.Date = strings.TrimSpace(e.Text)
	})

	ps.collector.OnHTML("div.body-text.post-body", func(e *colly.HTMLElement) {
		ps.post.Content = cleanText(e.DOM.Text())
	})

	ps.collector.OnHTML("li.comment-item", func(e *colly.HTMLElement) {
		if e.DOM.Find(".deleted-comment").Length() > 0 {
			return
		}
		body := e.DOM.Find("div.comment-body").First()
		if body.Length() == 0 {
			return
		}

		comment := model.Comment{
			Author: "Unknown Commenter",
			Date:   "Unknown Date",
			Text:   cleanText(textWithoutBlockquotes(body)),
			Points: "0",
		}
		if author := e.DOM.Find("a.author").First(); author.Length() > 0 {
			comment.Author = strings.TrimSpace(author.Text())
		}
		if date := e.DOM.Find("a.date").First(); date.Length() > 0 {
			comment.Date = strings.TrimSpace(date.Text())
		}
		if karma := e.DOM.Find("div.karma span.karma-value").First(); karma.Length() > 0 {
			comment.Points = strings.TrimSpace(karma.Text())
		}
		ps.post.Comments = append(ps.post.Comments, comment)
	})

	ps.collector.OnRequest(func(r *colly.Request) {
		log.Printf("PostScraper visiting %s", r.URL.String())
	})

	ps.collector.OnError(func(r *colly.Response, err error) {
		ps.fetchErr = err
	})

	return ps
}

// ScrapePost fetches postURL and returns the extracted record. The returned
// post always carries the requested URL and a scraped_at timestamp.
func (ps *PostScraper) ScrapePost(postURL string) (model.Post, error) {
	ps.post = model.Post{
		URL:       postURL,
		Comments:  []model.Comment{},
		ScrapedAt: time.Now().Format(time.RFC3339),
	}
	ps.fetchErr = nil

	if err := ps.collector.Visit(postURL); err != nil {
		return model.Post{}, err
	}
	if ps.fetchErr != nil {
		return model.Post{}, ps.fetchErr
	}
	return ps.post, nil
}
