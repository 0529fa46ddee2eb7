package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/tkaraca/restel/internal/core/request"
	"github.com/tkaraca/restel/internal/mock"
)

func mockCmd() {
	fs := flag.NewFlagSet("mock", flag.ExitOnError)
	portFlag := fs.Int("port", 8080, "Port to listen on")
	latencyFlag := fs.Duration("latency", 0, "Artificial response latency (e.g., 200ms, 1s)")
	dirFlag := fs.String("dir", "", "Serve every request file in a directory")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: restel mock [flags] [file.restel.yaml ...]\n\n")
		fmt.Fprintf(os.Stderr, "Start a mock HTTP server from request files.\n\n")
		fmt.Fprintf(os.Stderr, "The server matches incoming requests by method and URL path against\n")
		fmt.Fprintf(os.Stderr, "the loaded request files and answers with their saved bodies.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  restel mock get-users.restel.yaml create-item.restel.yaml\n")
		fmt.Fprintf(os.Stderr, "  restel mock --dir ./requests --port 3000\n")
		fmt.Fprintf(os.Stderr, "  restel mock --dir ./requests --latency 200ms\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	if *portFlag < 0 || *portFlag > 65535 {
		fmt.Fprintf(os.Stderr, "Error: port must be between 0 and 65535\n")
		os.Exit(2)
	}

	reqs, err := loadMockRequests(*dirFlag, fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if len(reqs) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no request files given (pass files or --dir)\n\n")
		fs.Usage()
		os.Exit(2)
	}

	opts := []mock.Option{mock.WithPort(*portFlag)}
	if *latencyFlag > 0 {
		opts = append(opts, mock.WithLatency(*latencyFlag))
	}

	srv, err := mock.NewServer(reqs, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Mock server listening on %s (%d requests loaded)\n", srv.Addr(), len(reqs))
	if *latencyFlag > 0 {
		fmt.Fprintf(os.Stderr, "Artificial latency: %s\n", latencyFlag.String())
	}
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop.\n")

	<-ctx.Done()
}

func loadMockRequests(dir string, paths []string) ([]*request.Request, error) {
	var reqs []*request.Request

	if dir != "" {
		entries, err := request.ListDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.LoadErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", e.Path, e.LoadErr)
				continue
			}
			req, err := request.LoadFile(e.Path)
			if err != nil {
				continue
			}
			reqs = append(reqs, req)
		}
	}

	for _, path := range paths {
		req, err := request.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		reqs = append(reqs, req)
	}

	return reqs, nil
}
