package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"guess-master/internal/client"
	"guess-master/internal/config"
	"guess-master/internal/tui"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run plays one session and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	cfg, err := config.LoadClient(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		return 2
	}

	// the terminal belongs to the UI, so logs go to a file or nowhere
	if cfg.Debug {
		f, err := tea.LogToFile("debug.log", "play")
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open debug log: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	log.Printf("Connecting to %s", cfg.ServerURL)
	gameClient := client.New(cfg.ServerURL, client.WithPrivateGame())

	if _, err := tea.NewProgram(tui.New(gameClient), tea.WithAltScreen()).Run(); err != nil {
		log.Printf("Program exited with error: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
