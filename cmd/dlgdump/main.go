// Package main provides a CLI for inspecting stored dialogue events.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	dlgdumpcmd "github.com/louisbranch/dialogue/internal/cmd/dlgdump"
)

func main() {
	cfg, err := dlgdumpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DLGDUMP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dlgdumpcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("dlgdump: %v", err)
	}
}
