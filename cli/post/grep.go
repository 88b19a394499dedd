package post

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"

	"github.com/YuamLu/LessWrong-scraper/configuration"
	"github.com/YuamLu/LessWrong-scraper/model"
	"github.com/bit101/go-ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func initGrepCommand() *cobra.Command {
	grepCommand := &cobra.Command{
		Use:   "grep <regex>...",
		Short: "Locates posts and comments matching one or more regular expression(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGrepCommand,
	}
	return grepCommand
}

// match pairs a hit with its post; Comment is nil when the post body matched.
type match struct {
	Post    model.Post
	Comment *model.Comment
}

func matchAll(patterns []*regexp.Regexp, text string) bool {
	for _, pattern := range patterns {
		if !pattern.MatchString(text) {
			return false
		}
	}
	return true
}

func paginateMatches(matches []match) {
	cmd := exec.Command("/usr/bin/less", "-FRX")
	cmd.Stdout = os.Stdout

	if stdin, err := cmd.StdinPipe(); err == nil {
		go func() {
			defer stdin.Close()

			for _, m := range matches {
				ansi.Fprintf(stdin, ansi.Yellow, "%s ", m.Post.Title)
				ansi.Fprintf(stdin, ansi.Cyan, "%s\n", m.Post.URL)
				if m.Comment == nil {
					ansi.Fprintf(stdin, ansi.Red, "%s", m.Post.Author)
					ansi.Fprintf(stdin, ansi.Default, ": ")
					ansi.Fprintf(stdin, ansi.Green, "\"")
					ansi.Fprintf(stdin, ansi.Default, "%s", m.Post.Content)
					ansi.Fprintf(stdin, ansi.Green, "\"\n")
				} else {
					ansi.Fprintf(stdin, ansi.Red, "%s", m.Comment.Author)
					ansi.Fprintf(stdin, ansi.Default, " (")
					ansi.Fprintf(stdin, ansi.Green, "%s", m.Comment.Date)
					ansi.Fprintf(stdin, ansi.Default, "): ")
					ansi.Fprintf(stdin, ansi.Green, "\"")
					ansi.Fprintf(stdin, ansi.Default, "%s", m.Comment.Text)
					ansi.Fprintf(stdin, ansi.Green, "\"\n")
				}
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

func printMatches(matches []match) {
	for _, m := range matches {
		fmt.Printf("%s %s\n", m.Post.Title, m.Post.URL)
		if m.Comment == nil {
			fmt.Printf("%s: %q\n", m.Post.Author, m.Post.Content)
		} else {
			fmt.Printf("%s (%s): %q\n", m.Comment.Author, m.Comment.Date, m.Comment.Text)
		}
		fmt.Println("--------")
	}
}

func runGrepCommand(cmd *cobra.Command, args []string) {
	patterns := make([]*regexp.Regexp, len(args))
	for i, arg := range args {
		pattern, err := regexp.Compile(arg)
		if err != nil {
			log.Fatalf("Bad regex %q: %v", arg, err)
		}
		patterns[i] = pattern
	}

	st, err := configuration.OpenExistingArchive()
	if err != nil {
		log.Fatal(err)
	}

	var matches []match
	for _, p := range st.Posts() {
		if matchAll(patterns, p.Content) {
			matches = append(matches, match{Post: p})
		}
		for i := range p.Comments {
			if matchAll(patterns, p.Comments[i].Text) {
				matches = append(matches, match{Post: p, Comment: &p.Comments[i]})
			}
		}
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		paginateMatches(matches)
	} else {
		printMatches(matches)
	}
}
