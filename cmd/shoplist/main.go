package main

import (
	"os"

	"github.com/idilsaglam/shoplist/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.StdStreams(), version))
}
