package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/bingoohuang/resalloc"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)

	c, err := resalloc.ParseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		logger.Printf("Error: %v", err)
		return 1
	}

	if err := resalloc.New(resalloc.WithConfig(c)).Run(ctx, stdout); err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}

	return 0
}
