package post

import (
	"fmt"
	"log"
	"math"

	"github.com/YuamLu/LessWrong-scraper/configuration"
	"github.com/spf13/cobra"
)

func initListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists posts in the archive",
		Args:  cobra.NoArgs,
		Run:   runListCommand,
	}
	return listCommand
}

func runListCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingArchive()
	if err != nil {
		log.Fatal(err)
	}

	posts := st.Posts()
	if len(posts) == 0 {
		return
	}

	colWidth := uint(math.Round(math.Ceil(math.Log10(float64(len(posts) + 1)))))
	fmtString := fmt.Sprintf("%%0%dd: %%s by %%s (%%s) [%%d comments]\n", colWidth)
	for i, p := range posts {
		fmt.Printf(fmtString, i, p.Title, p.Author, p.Date, len(p.Comments))
	}
}
