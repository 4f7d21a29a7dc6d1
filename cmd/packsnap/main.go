package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/packsnap/packsnap/internal/cli"
	"github.com/packsnap/packsnap/internal/mcpsrv"
	"github.com/packsnap/packsnap/internal/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("packsnap\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	command := os.Args[1]
	projectPath := os.Args[2]
	sink := output.NewStdSink(os.Stdout, os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down", sig)
		cancel()
	}()

	var err error
	switch command {
	case "build":
		err = cli.Build(projectPath, sink)
	case "watch":
		err = cli.Watch(ctx, projectPath, sink)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	case "serve-mcp":
		// stdout carries the MCP protocol, so progress goes to stderr.
		err = mcpsrv.NewServer(output.NewStdSink(os.Stderr, os.Stderr)).Serve(ctx)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: packsnap <build|watch|serve-mcp> <project>")
}
