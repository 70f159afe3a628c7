package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/recon/internal/reconctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := reconctl.NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "reconctl:", err)
		stop()
		os.Exit(1)
	}
}
