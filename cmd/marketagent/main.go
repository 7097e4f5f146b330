package main

import (
	"github.com/quantfold/marketagent/internal/cli"
)

func main() {
	cli.Run()
}
