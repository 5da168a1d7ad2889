package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"quiz-console/internal/api"
	"quiz-console/internal/cli"
	"quiz-console/internal/config"
	"quiz-console/internal/identity"
	"quiz-console/internal/localstore"
)

func main() {
	cfg := config.Load()

	server := flag.String("server", cfg.ServerURL, "quiz service base URL")
	timeout := flag.Duration("timeout", cfg.HTTPTimeout, "HTTP timeout")
	statePath := flag.String("state", cfg.StateDBPath, "path to the local state database")
	flag.Parse()

	store, err := localstore.Open(*statePath)
	if err != nil {
		log.Fatalf("open local state: %v", err)
	}
	defer store.Close()

	ident := identity.NewManager(store)
	client := api.NewClient(*server, &http.Client{Timeout: *timeout}, ident.Token)

	ctx := context.Background()
	if err := ident.Restore(ctx); err != nil {
		log.Printf("warning: could not restore saved identity: %v", err)
	}

	app := cli.New(client, ident, store)
	if err := app.Run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
