package main

import "github.com/dgallion1/wikitext/internal/cli"

func main() {
	cli.Execute()
}
