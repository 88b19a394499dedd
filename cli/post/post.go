package post

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/YuamLu/LessWrong-scraper/store"
	"github.com/YuamLu/LessWrong-scraper/utils"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	postCommand := &cobra.Command{
		Use:   "post",
		Short: "Commands for inspecting archived posts",
		Example: "  # Finds posts with content mentioning 'paperclip'\n" +
			"  " + os.Args[0] + " post grep paperclip",
	}

	postCommand.AddCommand(initGrepCommand())
	postCommand.AddCommand(initListCommand())
	postCommand.AddCommand(initOpenCommand())
	postCommand.AddCommand(initShowCommand())
	postCommand.AddCommand(initWordcloudCommand())

	return postCommand
}

// findPost resolves an archived post by index or URL.
func findPost(st *store.ArchiveStore, ref string) (model.Post, error) {
	posts := st.Posts()

	if index, err := strconv.Atoi(ref); err == nil {
		if index < 0 || index >= len(posts) {
			return model.Post{}, fmt.Errorf("no post with index %d", index)
		}
		return posts[index], nil
	}

	canonical := canonicalURL(ref)
	for _, p := range posts {
		if canonicalURL(p.URL) == canonical {
			return p, nil
		}
	}
	return model.Post{}, fmt.Errorf("no post with URL %q", ref)
}

func canonicalURL(ref string) string {
	if parsed, err := url.Parse(ref); err == nil {
		return utils.TrimmedURL(parsed).String()
	}
	return ref
}
