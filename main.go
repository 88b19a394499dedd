package main

import (
	"log"

	"github.com/YuamLu/LessWrong-scraper/cli"
)

func main() {
	scraperCmd := cli.NewCommand()
	if err := scraperCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
