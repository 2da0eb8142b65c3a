package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userdir/internal/buildinfo"
	"github.com/dmitrijs2005/userdir/internal/cli"
	"github.com/dmitrijs2005/userdir/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "usage: userdir [-config file] [-api url] [-db path] [-timeout d] [-offline] [-log-level l] [-log-format f] [-otel-endpoint url]")
		return
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, os.Stdout, os.Stderr)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx, os.Stdin); err != nil {
		log.Printf("%v", err)
	}
}
