package main

import (
	"os"

	"github.com/jaki95/audio-downloader/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
