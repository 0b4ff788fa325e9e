// Package main is the entry point of streambox.
package main

import (
	"github.com/samber/lo"
	"github.com/streambox/streambox/cmd"
	"github.com/streambox/streambox/config"
	"github.com/streambox/streambox/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
