package post

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/YuamLu/LessWrong-scraper/configuration"
	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/bit101/go-ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func initShowCommand() *cobra.Command {
	showCommand := &cobra.Command{
		Use:   "show <index | URL>",
		Short: "Formats a post and its comments for human consumption",
		Args:  cobra.ExactArgs(1),
		Run:   runShowCommand,
	}
	return showCommand
}

func paginatePost(p model.Post) {
	cmd := exec.Command("/usr/bin/less", "-FRX")
	cmd.Stdout = os.Stdout

	if stdin, err := cmd.StdinPipe(); err == nil {
		go func() {
			defer stdin.Close()

			ansi.Fprintf(stdin, ansi.Yellow, "%s", p.Title)
			ansi.Fprintf(stdin, ansi.Default, " by ")
			ansi.Fprintf(stdin, ansi.Red, "%s", p.Author)
			ansi.Fprintf(stdin, ansi.Default, " (")
			ansi.Fprintf(stdin, ansi.Green, "%s", p.Date)
			ansi.Fprintf(stdin, ansi.Default, ") ")
			ansi.Fprintf(stdin, ansi.Cyan, "%s\n", p.URL)
			ansi.Fprintln(stdin, ansi.Blue, "========")
			ansi.Fprintf(stdin, ansi.Default, "%s\n", p.Content)
			ansi.Fprintln(stdin, ansi.Blue, "========")

			for _, c := range p.Comments {
				ansi.Fprintf(stdin, ansi.Red, "%s", c.Author)
				ansi.Fprintf(stdin, ansi.Default, " (")
				ansi.Fprintf(stdin, ansi.Green, "%s", c.Date)
				ansi.Fprintf(stdin, ansi.Default, ", ")
				ansi.Fprintf(stdin, ansi.Purple, "%s points", c.Points)
				ansi.Fprintf(stdin, ansi.Default, "): ")
				ansi.Fprintf(stdin, ansi.Green, "\"")
				ansi.Fprintf(stdin, ansi.Default, "%s", c.Text)
				ansi.Fprintf(stdin, ansi.Green, "\"\n")
				ansi.Fprintln(stdin, ansi.Blue, "--------")
			}
		}()
	} else {
		log.Fatal(err)
	}

	err := cmd.Run()
	if err != nil {
		log.Fatal(err)
	}
}

func printPost(p model.Post) {
	fmt.Printf("%s by %s (%s)\n%s\n%s\n", p.Title, p.Author, p.Date, p.URL, p.Content)
	for _, c := range p.Comments {
		fmt.Printf("%s (%s, %s points): %q\n", c.Author, c.Date, c.Points, c.Text)
		fmt.Println("--------")
	}
}

func runShowCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingArchive()
	if err != nil {
		log.Fatal(err)
	}
	p, err := findPost(st, args[0])
	if err != nil {
		log.Fatal(err)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		paginatePost(p)
	} else {
		printPost(p)
	}
}
