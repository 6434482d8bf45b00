// Package main is the entry point for speechmark.
package main

import (
	"github.com/samber/lo"
	"github.com/speechmark/speechmark/cmd"
	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
