package post

import (
	"log"

	"github.com/YuamLu/LessWrong-scraper/configuration"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

func initOpenCommand() *cobra.Command {
	openCommand := &cobra.Command{
		Use:   "open <index | URL>",
		Short: "Opens a post in a browser.",
		Args:  cobra.ExactArgs(1),
		Run:   runOpenCommand,
	}
	return openCommand
}

func runOpenCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingArchive()
	if err != nil {
		log.Fatal(err)
	}
	p, err := findPost(st, args[0])
	if err != nil {
		log.Fatal(err)
	}
	browser.OpenURL(p.URL)
}
