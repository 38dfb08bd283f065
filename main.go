// Copyright (c) 2026 BVK Chaitanya

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/bvk/arbit/subcmds"
	"github.com/visvasity/cli"
)

func commands() []cli.Command {
	reportCmds := []cli.Command{
		new(subcmds.ListReports),
		new(subcmds.ShowReport),
	}

	return []cli.Command{
		new(subcmds.Download),
		new(subcmds.Find),
		new(subcmds.Sweep),
		new(subcmds.Eval),
		cli.NewGroup("reports", "View saved sweep reports", reportCmds...),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, commands(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
