package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/stretchr/testify/require"
)

func testPost(url string) model.Post {
	return model.Post{
		URL:     url,
		Title:   "Some post",
		Author:  "somebody",
		Date:    "1 Jan 2020 12:00 UTC",
		Content: "Some text",
		Comments: []model.Comment{
			{Author: "commenter", Date: "1 Jan 2020 13:00 UTC", Text: "A reply", Points: "5"},
		},
	}
}

func TestBasicStore(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "archive.json")
	progressPath := filepath.Join(tmpDir, "progress.json")

	st, err := OpenArchiveStore(archivePath, progressPath)
	require.Equal(t, nil, err)
	require.Equal(t, 0, st.Cursor())
	require.Equal(t, 0, st.Len())

	added, err := st.AddPost(testPost("https://www.greaterwrong.com/posts/abc/first"))
	require.Equal(t, nil, err)
	require.True(t, added)
	require.Equal(t, 1, st.Pending())
	require.Equal(t, 0, st.Cursor())

	err = st.Flush(1)
	require.Equal(t, nil, err)
	require.Equal(t, 1, st.Cursor())
	require.Equal(t, 0, st.Pending())

	// Both files must be valid JSON of the expected shape after a flush.
	content, err := os.ReadFile(archivePath)
	require.Equal(t, nil, err)
	var af archiveFile
	require.Equal(t, nil, json.Unmarshal(content, &af))
	require.Equal(t, 1, len(af.Posts))
	require.Equal(t, "https://www.greaterwrong.com/posts/abc/first", af.Posts[0].URL)

	content, err = os.ReadFile(progressPath)
	require.Equal(t, nil, err)
	var progress model.Progress
	require.Equal(t, nil, json.Unmarshal(content, &progress))
	require.Equal(t, 1, progress.TotalPostsScraped)
	require.Equal(t, 1, progress.LastOffset)
}

func TestFlushIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "archive.json")

	st, err := OpenArchiveStore(archivePath, "")
	require.Equal(t, nil, err)

	_, err = st.AddPost(testPost("https://www.greaterwrong.com/posts/abc/first"))
	require.Equal(t, nil, err)
	require.Equal(t, nil, st.Flush(1))

	first, err := os.ReadFile(archivePath)
	require.Equal(t, nil, err)

	require.Equal(t, nil, st.Flush(1))
	second, err := os.ReadFile(archivePath)
	require.Equal(t, nil, err)
	require.Equal(t, first, second)
}

func TestResumeFromExistingArchive(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "archive.json")

	st, err := OpenArchiveStore(archivePath, "")
	require.Equal(t, nil, err)
	for _, url := range []string{
		"https://www.greaterwrong.com/posts/abc/first",
		"https://www.greaterwrong.com/posts/def/second",
	} {
		added, err := st.AddPost(testPost(url))
		require.Equal(t, nil, err)
		require.True(t, added)
	}
	require.Equal(t, nil, st.Flush(2))

	// Reopening reconstructs the cursor from the record count.
	st, err = OpenArchiveStore(archivePath, "")
	require.Equal(t, nil, err)
	require.Equal(t, 2, st.Cursor())
	require.True(t, st.Contains("https://www.greaterwrong.com/posts/abc/first"))

	// A URL seen before the restart is not stored twice.
	added, err := st.AddPost(testPost("https://www.greaterwrong.com/posts/abc/first"))
	require.Equal(t, nil, err)
	require.False(t, added)

	added, err = st.AddPost(testPost("https://www.greaterwrong.com/posts/ghi/third"))
	require.Equal(t, nil, err)
	require.True(t, added)
	require.Equal(t, nil, st.Flush(3))

	st, err = OpenArchiveStore(archivePath, "")
	require.Equal(t, nil, err)
	require.Equal(t, 3, st.Cursor())
}

func TestAddPostRejectsEmptyURL(t *testing.T) {
	tmpDir := t.TempDir()
	st, err := OpenArchiveStore(filepath.Join(tmpDir, "archive.json"), "")
	require.Equal(t, nil, err)

	_, err = st.AddPost(model.Post{Title: "No URL"})
	require.NotEqual(t, nil, err)
}

func TestOpenRejectsCorruptArchive(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "archive.json")
	require.Equal(t, nil, os.WriteFile(archivePath, []byte("{not json"), 0o644))

	_, err := OpenArchiveStore(archivePath, "")
	require.NotEqual(t, nil, err)
}
