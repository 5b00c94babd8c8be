// Package main is the entry point for the weekly CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	// Embed zone data so America/Los_Angeles loads on bare hosts.
	_ "time/tzdata"

	"github.com/charmbracelet/log"

	"weekly/internal/cli"
	"weekly/internal/commands"
	"weekly/internal/config"
	"weekly/internal/remote"
	"weekly/internal/state"
	"weekly/internal/sync"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newOrchestrator)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newOrchestrator builds the live session: remote client, initial document
// fetch, state. A failed fetch degrades to an empty document so the tool
// stays usable for reads when the remote is down.
func newOrchestrator(ctx context.Context, cfg *config.Config, logger *log.Logger) (*sync.Orchestrator, error) {
	client, err := remote.New(cfg.RemoteURL, logger)
	if err != nil {
		return nil, err
	}

	doc, err := client.FetchDocument(ctx)
	if err != nil {
		var fetchErr *remote.FetchError
		if !errors.As(err, &fetchErr) {
			return nil, err
		}
		logger.Error("fetch failed, starting from an empty document", "err", err)
		doc = nil
	}

	st := state.New(doc)
	tokens := sync.Tokens{Keyholder: cfg.KeyholderToken, Sub: cfg.SubToken}
	return sync.New(client, st, cfg.Signals(), tokens, logger), nil
}
