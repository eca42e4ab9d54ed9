package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/bodyfat/internal/engine"
	bfmcp "github.com/claude/bodyfat/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	remoteURL := flag.String("url", "", "bodyfat REST API base URL (e.g. https://bodyfat.tail1234.ts.net); empty runs the engine in-process")
	httpAddr := flag.String("http", "", "serve streamable HTTP on this address instead of stdio")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("bodyfat-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var calc bfmcp.Calculator
	if *remoteURL != "" {
		calc = bfmcp.NewHTTPClient(*remoteURL)
		log.Info("using remote engine", "url", *remoteURL)
	} else {
		calc = bfmcp.Local{Engine: engine.New(log)}
	}

	s := bfmcp.New(calc, Version, log)

	if *httpAddr != "" {
		log.Info("mcp streamable http starting", "addr", *httpAddr)
		if err := server.NewStreamableHTTPServer(s).Start(*httpAddr); err != nil {
			log.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
