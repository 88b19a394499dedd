package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/YuamLu/LessWrong-scraper/utils"
)

// ArchiveStore persists posts as a single JSON document of the form
// {"posts": [...]}. The cursor is the count of posts on disk; posts appended
// past the cursor exist only in memory until Flush succeeds.
type ArchiveStore struct {
	Filename     string
	ProgressFile string
	posts        []model.Post
	seen         map[string]bool
	cursor       int
}

type archiveFile struct {
	Posts []model.Post `json:"posts"`
}

// OpenArchiveStore loads the archive at path if it exists, or prepares an
// empty one. Fresh starts and resumes share this single code path, so the
// cursor always equals the count of posts already persisted.
func OpenArchiveStore(path, progressPath string) (*ArchiveStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	st := &ArchiveStore{
		Filename:     path,
		ProgressFile: progressPath,
		seen:         make(map[string]bool),
	}

	exists, err := utils.PathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var af archiveFile
		if err := json.Unmarshal(content, &af); err != nil {
			return nil, fmt.Errorf("loading archive %q: %w", path, err)
		}
		st.posts = af.Posts
		for _, p := range st.posts {
			st.seen[p.URL] = true
		}
		st.cursor = len(st.posts)
	}
	return st, nil
}

// Cursor returns the count of posts persisted by the last successful flush,
// which doubles as the next listing offset on resume.
func (st *ArchiveStore) Cursor() int {
	return st.cursor
}

func (st *ArchiveStore) Len() int {
	return len(st.posts)
}

// Pending returns the number of posts appended since the last flush.
func (st *ArchiveStore) Pending() int {
	return len(st.posts) - st.cursor
}

func (st *ArchiveStore) Contains(url string) bool {
	return st.seen[url]
}

func (st *ArchiveStore) Posts() []model.Post {
	return st.posts
}

// AddPost appends a post to the in-memory buffer. Posts whose URL is already
// archived are ignored, so the archive never holds duplicate URLs.
func (st *ArchiveStore) AddPost(p model.Post) (bool, error) {
	if p.URL == "" {
		return false, fmt.Errorf("refusing to store post with empty URL (title %q)", p.Title)
	}
	if st.seen[p.URL] {
		return false, nil
	}
	st.posts = append(st.posts, p)
	st.seen[p.URL] = true
	return true, nil
}

// Flush writes the archive and the progress sidecar, then advances the
// cursor. Both files are replaced via temp-file-and-rename so an interrupted
// flush leaves the previous contents intact.
func (st *ArchiveStore) Flush(lastOffset int) error {
	content, err := json.MarshalIndent(archiveFile{Posts: st.posts}, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(st.Filename, content); err != nil {
		return fmt.Errorf("flushing archive %q: %w", st.Filename, err)
	}

	if st.ProgressFile != "" {
		progress := model.Progress{
			LastOffset:        lastOffset,
			LastScrapedTime:   time.Now().Format(time.RFC3339),
			TotalPostsScraped: len(st.posts),
		}
		content, err := json.MarshalIndent(progress, "", "  ")
		if err != nil {
			return err
		}
		if err := writeFileAtomic(st.ProgressFile, content); err != nil {
			return fmt.Errorf("flushing progress %q: %w", st.ProgressFile, err)
		}
	}

	st.cursor = len(st.posts)
	return nil
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
