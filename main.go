package main

import (
	"os"

	"regscope/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
