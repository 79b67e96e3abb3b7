package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/philipparndt/quadview/cmd"
	"github.com/philipparndt/quadview/version"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version.GetFullVersion()),
		fang.WithCommit(version.GitCommit),
	); err != nil {
		os.Exit(1)
	}
}
