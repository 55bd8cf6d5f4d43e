package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dmitrijs2005/arcanedex/internal/buildinfo"
	"github.com/dmitrijs2005/arcanedex/internal/mockserver/command"
)

func main() {
	root := command.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(buildinfo.Version()),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
