package main

import (
	"github.com/pdlabs/pdgame/internal/cli"
)

func main() {
	cli.Execute()
}
