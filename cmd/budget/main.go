// Package main runs budget commands against the budget store.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	budgetcmd "github.com/matthiaskaminski/platforma-mvp-sub000/internal/cmd/budget"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/config"
)

func main() {
	cfg, err := budgetcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[BUDGET] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := budgetcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("budget command failed: %v", err)
	}
}
