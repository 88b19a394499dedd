package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YuamLu/LessWrong-scraper/configuration"
	"github.com/YuamLu/LessWrong-scraper/collector"
	"github.com/YuamLu/LessWrong-scraper/gw_scraper"
	"github.com/YuamLu/LessWrong-scraper/progress"
	"github.com/YuamLu/LessWrong-scraper/store"
	"github.com/spf13/cobra"
)

var (
	postURL     string
	delaySecs   float64
	batchSave   int
	startOffset int
	maxOffset   int
	noProgress  bool
	quiet       bool
	onError     string
)

func NewCommand() *cobra.Command {
	scrapeCommand := &cobra.Command{
		Use:   "scrape [--url URL]",
		Short: "Scrapes posts into the archive, resuming where the last run stopped",
		Args:  cobra.NoArgs,
		Example: "" +
			"  " + os.Args[0] + " scrape --max-offset 100\n" +
			"  " + os.Args[0] + " scrape --url https://www.greaterwrong.com/posts/abc/some-post",
		Run: runScrapeCommand,
	}

	scrapeCommand.Flags().StringVar(&postURL, "url", "", "Scrape exactly one post, ignoring pagination")
	scrapeCommand.Flags().Float64Var(&delaySecs, "delay", 2, "Delay between requests in seconds")
	scrapeCommand.Flags().IntVar(&batchSave, "batch-save", 20, "Save progress after every N posts")
	scrapeCommand.Flags().IntVar(&startOffset, "start-offset", -1, "Override the starting offset")
	scrapeCommand.Flags().IntVar(&maxOffset, "max-offset", 0, "Maximum offset to scrape")
	scrapeCommand.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress indicator")
	scrapeCommand.Flags().BoolVar(&quiet, "quiet", false, "Disable verbose output")
	scrapeCommand.Flags().StringVar(&onError, "on-error", "halt", "Policy for a failed fetch: halt or skip")

	return scrapeCommand
}

func runScrapeCommand(cmd *cobra.Command, args []string) {
	if onError != "halt" && onError != "skip" {
		log.Fatalf("Bad --on-error %q, want halt or skip", onError)
	}
	if quiet {
		log.SetOutput(io.Discard)
	}

	st, err := store.OpenArchiveStore(configuration.ArchivePath(), configuration.ProgressPath())
	if err != nil {
		log.Fatal(err)
	}
	if st.Cursor() > 0 {
		log.Printf("Loaded %d existing posts from %s", st.Cursor(), st.Filename)
	}

	var bar *progress.Bar
	if !noProgress {
		bar = progress.NewBar(os.Stdout)
	}

	c := collector.NewCollector(
		collector.Config{
			StartOffset: startOffset,
			MaxOffset:   maxOffset,
			Delay:       time.Duration(delaySecs * float64(time.Second)),
			BatchSize:   batchSave,
			HaltOnError: onError == "halt",
		},
		gw_scraper.NewListScraper(gw_scraper.BaseURL),
		gw_scraper.NewPostScraper(),
		st,
		bar,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if postURL != "" {
		if err := c.ScrapeOne(ctx, postURL); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Successfully scraped post and added to %s\n", st.Filename)
		return
	}

	if err := c.Run(ctx); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Successfully scraped %d total posts to %s\n", st.Len(), st.Filename)
}
