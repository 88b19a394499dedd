package model

// Post is one archived GreaterWrong post. URL is the unique key; every
// stored post has a non-empty URL.
type Post struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Comments  []Comment `json:"comments"`
	ScrapedAt string    `json:"scraped_at"`
}

// Comment is one comment on a post, in page order. Threading is not
// reconstructed.
type Comment struct {
	Author string `json:"author"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	Points string `json:"points"`
}

// Progress is the sidecar record written next to the archive on each flush.
type Progress struct {
	LastOffset        int    `json:"last_offset"`
	LastScrapedTime   string `json:"last_scraped_time"`
	TotalPostsScraped int    `json:"total_posts_scraped"`
}
