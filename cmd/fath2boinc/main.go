package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fath2boinc/internal/app"
	"github.com/dmitrijs2005/fath2boinc/internal/common"
	"github.com/dmitrijs2005/fath2boinc/internal/config"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := config.LoadConfig(args)
	if errors.Is(err, common.ErrUsage) {
		fmt.Fprintln(stderr, config.Usage)
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(stderr, "fath2boinc: %v\n", err)
		return exitError
	}

	a, err := app.NewApp(ctx, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "fath2boinc: %v\n", err)
		return exitError
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "fath2boinc: %v\n", err)
		return exitError
	}
	return exitOK
}
