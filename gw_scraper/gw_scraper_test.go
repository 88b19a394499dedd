package gw_scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<h1 class="listing"><a href="/posts/abc/first-post">First Post</a></h1>
<h2 class="listing"><a href="/posts/def/second-post">Second Post</a></h2>
<h2 class="nav"><a href="/about">About</a></h2>
</body></html>`

const postPage = `<html><body><main>
<h1 class="post-title">First Post</h1>
<div class="post-meta">
  <a class="author" href="/users/alice">alice</a>
  <span class="date">1 Jan 2020 12:00 UTC</span>
</div>
<div class="body-text post-body"><p>Para one.</p><p>Para&#160;two.</p></div>
<ul class="comment-thread">
  <li class="comment-item">
    <div class="comment-meta">
      <a class="author">bob</a>
      <a class="date">1 Jan 2020 13:00 UTC</a>
      <div class="karma"><span class="karma-value">7</span></div>
    </div>
    <div class="comment-body"><blockquote>Para one.</blockquote><p>I disagree.</p></div>
    <ul>
      <li class="comment-item">
        <div class="comment-meta">
          <a class="author">carol</a>
          <a class="date">1 Jan 2020 14:00 UTC</a>
        </div>
        <div class="comment-body"><p>Nested reply.</p></div>
      </li>
    </ul>
  </li>
  <li class="comment-item"><div class="deleted-comment">comment deleted</div></li>
</ul>
</main></body></html>`

func newFixtureServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, listingPage)
			return
		}
		fmt.Fprint(w, "<html><body><h1>Nothing here</h1></body></html>")
	})
	mux.HandleFunc("/posts/abc/first-post", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, postPage)
	})
	mux.HandleFunc("/posts/def/second-post", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>No recognizable fields</p></body></html>")
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestListScraperPostsAtOffset(t *testing.T) {
	server := newFixtureServer(t)

	ls := NewListScraper(server.URL)
	refs, err := ls.PostsAtOffset(0)
	require.Equal(t, nil, err)
	require.Equal(t, 2, len(refs))
	require.Equal(t, "First Post", refs[0].Title)
	require.Equal(t, server.URL+"/posts/abc/first-post", refs[0].URL)
	require.Equal(t, "Second Post", refs[1].Title)

	// A listing with no post links is an empty page.
	refs, err = ls.PostsAtOffset(100)
	require.Equal(t, nil, err)
	require.Equal(t, 0, len(refs))
}

func TestListScraperNotFoundMeansEmpty(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ls := NewListScraper(server.URL)
	refs, err := ls.PostsAtOffset(0)
	require.Equal(t, nil, err)
	require.Equal(t, 0, len(refs))
}

func TestPostScraper(t *testing.T) {
	server := newFixtureServer(t)

	ps := NewPostScraper()
	post, err := ps.ScrapePost(server.URL + "/posts/abc/first-post")
	require.Equal(t, nil, err)

	require.Equal(t, server.URL+"/posts/abc/first-post", post.URL)
	require.Equal(t, "First Post", post.Title)
	require.Equal(t, "alice", post.Author)
	require.Equal(t, "1 Jan 2020 12:00 UTC", post.Date)
	require.Equal(t, "Para one.Para two.", post.Content)
	require.NotEqual(t, "", post.ScrapedAt)

	// Page order, deleted comment skipped, quoted parent text stripped.
	require.Equal(t, 2, len(post.Comments))
	require.Equal(t, "bob", post.Comments[0].Author)
	require.Equal(t, "1 Jan 2020 13:00 UTC", post.Comments[0].Date)
	require.Equal(t, "I disagree.", post.Comments[0].Text)
	require.Equal(t, "7", post.Comments[0].Points)
	require.Equal(t, "carol", post.Comments[1].Author)
	require.Equal(t, "Nested reply.", post.Comments[1].Text)
	require.Equal(t, "0", post.Comments[1].Points)
}

func TestPostScraperMissingFieldsDegradeToEmpty(t *testing.T) {
	server := newFixtureServer(t)

	ps := NewPostScraper()
	post, err := ps.ScrapePost(server.URL + "/posts/def/second-post")
	require.Equal(t, nil, err)
	require.Equal(t, "", post.Title)
	require.Equal(t, "", post.Author)
	require.Equal(t, "", post.Date)
	require.Equal(t, "", post.Content)
	require.Equal(t, 0, len(post.Comments))
	require.Equal(t, server.URL+"/posts/def/second-post", post.URL)
}

func TestPostScraperUnreachablePage(t *testing.T) {
	server := newFixtureServer(t)

	ps := NewPostScraper()
	_, err := ps.ScrapePost(server.URL + "/gone")
	require.NotEqual(t, nil, err)
}

func TestCleanText(t *testing.T) {
	in := "First line\n   \nsecond line\n\n\nthird line\n\n"
	require.Equal(t, "First line\nsecond line\nthird line", cleanText(in))
}
