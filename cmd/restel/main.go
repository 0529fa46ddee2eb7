package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tkaraca/restel/internal/app"
	"github.com/tkaraca/restel/internal/config"
	"github.com/tkaraca/restel/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "send":
			sendCmd()
			return
		case "validate":
			validateCmd()
			return
		case "fmt":
			fmtCmd()
			return
		case "mock":
			mockCmd()
			return
		case "version":
			fmt.Printf("restel %s (%s) built %s\n", version.Version, version.Commit, version.Date)
			return
		case "help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `restel - a TUI REST client for the terminal

Usage:
  restel [flags]                   Launch TUI (interactive mode)
  restel <command> [args] [flags]  Run a subcommand

Commands:
  send      Send a request file headlessly and print the response
  validate  Validate request YAML files
  fmt       Format and normalize request YAML files
  mock      Start a mock HTTP server from request files
  version   Print version information
  help      Show this help message

TUI Flags:
  --file <path>  Open a .restel.yaml request file on startup
  --version      Print version and exit

Run 'restel <command> --help' for more information about a command.
`)
}

func tuiCmd() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	fileFlag := flag.String("file", "", "Open a .restel.yaml request file on startup")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("restel %s (%s) built %s\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	cfg := config.Load()
	model := app.New(cfg)

	if *fileFlag != "" {
		if err := model.OpenFile(*fileFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading request: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
