package main

import (
	"os"

	"github.com/lieyanc/czai/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
