package cli

import (
	"fmt"
	"os"

	"github.com/YuamLu/LessWrong-scraper/cli/post"
	"github.com/YuamLu/LessWrong-scraper/cli/scrape"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outputDir    string
	outputFile   string
	progressFile string
)

func NewCommand() *cobra.Command {
	scraperCli := &cobra.Command{
		Use:     "lesswrong-scraper",
		Short:   "LessWrong scraper CLI",
		Long:    "Scrapes LessWrong posts and comments from the GreaterWrong mirror",
		Example: fmt.Sprintf("  %s <command> [flags...]", os.Args[0]),
	}

	scraperCli.PersistentFlags().StringVar(&outputDir, "output-dir", ".", "Directory to save scraped data")
	scraperCli.PersistentFlags().StringVar(&outputFile, "output-file", "lesswrong_all_data.json", "File to save all data to")
	scraperCli.PersistentFlags().StringVar(&progressFile, "progress-file", "scraper_progress.json", "File to save progress information")
	viper.BindPFlag("output-dir", scraperCli.PersistentFlags().Lookup("output-dir"))
	viper.BindPFlag("output-file", scraperCli.PersistentFlags().Lookup("output-file"))
	viper.BindPFlag("progress-file", scraperCli.PersistentFlags().Lookup("progress-file"))

	scraperCli.AddCommand(post.NewCommand())
	scraperCli.AddCommand(scrape.NewCommand())

	return scraperCli
}
