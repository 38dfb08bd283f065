// Copyright (c) 2026 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/arbit/subcmds/cmdutil"
	"github.com/bvk/arbit/sweep"
	"github.com/google/uuid"
	"github.com/visvasity/cli"
)

type ListReports struct {
	cmdutil.ConfigFlags
}

func (c *ListReports) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	c.ConfigFlags.SetFlags(fset)
	return "list", fset, cli.CmdFunc(c.run)
}

func (c *ListReports) Purpose() string {
	return "Lists the saved sweep reports"
}

func (c *ListReports) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	cfg, err := c.ConfigFlags.Config()
	if err != nil {
		return err
	}
	db, closer, err := cmdutil.OpenDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer closer()

	reports, err := sweep.ListReports(ctx, db)
	if err != nil {
		return err
	}
	stdout := cli.Stdout(ctx)
	for _, r := range reports {
		printReport(stdout, r, false)
	}
	return nil
}

type ShowReport struct {
	cmdutil.ConfigFlags
}

func (c *ShowReport) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("show", flag.ContinueOnError)
	c.ConfigFlags.SetFlags(fset)
	return "show", fset, cli.CmdFunc(c.run)
}

func (c *ShowReport) Purpose() string {
	return "Prints a saved sweep report with all opportunities"
}

func (c *ShowReport) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (run-id) argument")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("could not parse run id %q: %w", args[0], err)
	}
	cfg, err := c.ConfigFlags.Config()
	if err != nil {
		return err
	}
	db, closer, err := cmdutil.OpenDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer closer()

	report, err := sweep.LoadReport(ctx, db, id)
	if err != nil {
		return err
	}
	printReport(cli.Stdout(ctx), report, true)
	return nil
}
