package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"github.com/tkaraca/restel/internal/client"
	"github.com/tkaraca/restel/internal/core/request"
)

// sendResult is the JSON output shape of the send command.
type sendResult struct {
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	StatusCode int               `json:"status_code"`
	Status     string            `json:"status"`
	DurationMS int64             `json:"duration_ms"`
	Size       int64             `json:"size"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

func sendCmd() {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	timeoutFlag := fs.Duration("timeout", 30*time.Second, "Request timeout")
	insecureFlag := fs.Bool("insecure", false, "Skip TLS certificate verification")
	outputFlag := fs.String("output", "text", "Output format: text, json")
	verboseFlag := fs.Bool("verbose", false, "Show response headers")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: restel send <file.restel.yaml> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Send a request file headlessly and print the response.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  restel send get-users.restel.yaml\n")
		fmt.Fprintf(os.Stderr, "  restel send get-users.restel.yaml --output json\n")
		fmt.Fprintf(os.Stderr, "  restel send get-users.restel.yaml --timeout 5s --insecure\n")
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  Response received with a 2xx or 3xx status\n")
		fmt.Fprintf(os.Stderr, "  1  Response received with a 4xx or 5xx status\n")
		fmt.Fprintf(os.Stderr, "  2  Request failed before a response arrived\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: request file path is required\n\n")
		fs.Usage()
		os.Exit(2)
	}

	switch *outputFlag {
	case "text", "json":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid output format %q (must be text or json)\n", *outputFlag)
		os.Exit(2)
	}

	req, err := request.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *insecureFlag {
		if req.TLS == nil {
			req.TLS = &request.TLS{}
		}
		req.TLS.InsecureSkipVerify = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeoutFlag)
	defer cancelTimeout()

	c := client.New()
	c.SetTimeout(*timeoutFlag)

	resp, err := c.Execute(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	switch *outputFlag {
	case "json":
		if err := printSendJSON(os.Stdout, req, resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(2)
		}
	default:
		printSendText(os.Stdout, req, resp, *verboseFlag)
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func printSendText(w io.Writer, req *request.Request, resp *client.Response, verbose bool) {
	fmt.Fprintf(w, "%s %s\n", req.Method, req.URL)
	fmt.Fprintf(w, "%s  %s  %d bytes\n", resp.Status, resp.Duration.Round(time.Millisecond), resp.Size)

	if verbose {
		fmt.Fprintln(w)
		keys := make([]string, 0, len(resp.Headers))
		for k := range resp.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, strings.Join(resp.Headers[k], ", "))
		}
	}

	body := resp.Body
	if resp.IsJSON() {
		// Pretty returns an empty slice for whitespace-only input.
		body = pretty.Pretty(body)
	}
	if len(body) == 0 {
		return
	}

	fmt.Fprintln(w)
	w.Write(body)
	if body[len(body)-1] != '\n' {
		fmt.Fprintln(w)
	}
}

func printSendJSON(w io.Writer, req *request.Request, resp *client.Response) error {
	headers := make(map[string]string, len(resp.Headers))
	for k, v := range resp.Headers {
		headers[k] = strings.Join(v, ", ")
	}

	out := sendResult{
		Method:     req.Method,
		URL:        req.URL,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		DurationMS: resp.Duration.Milliseconds(),
		Size:       resp.Size,
		Headers:    headers,
		Body:       string(resp.Body),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
