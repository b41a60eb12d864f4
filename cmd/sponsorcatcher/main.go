package main

import "github.com/myselfshravan/SponsorCatcher/internal/cli"

func main() {
	cli.Execute()
}
