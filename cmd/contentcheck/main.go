// Package main checks blog content for problems before it is deployed.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	checkcmd "github.com/nirbhaysingh/portfolio/internal/cmd/contentcheck"
	"github.com/nirbhaysingh/portfolio/internal/platform/config"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Fatalf("load env files: %v", err)
	}
	cfg, err := checkcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CONTENT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	problems, err := checkcmd.Run(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("content check: %v", err)
	}
	if problems > 0 {
		config.Exitf("contentcheck: %d problems", problems)
	}
}
