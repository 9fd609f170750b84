package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simforge/tictactoe-sim/internal/watch"
)

const defaultURL = "ws://localhost:8080/ws"

func main() {
	url := defaultURL
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	feed, err := watch.Dial(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer feed.Close()

	program := tea.NewProgram(watch.NewModel(feed))
	if _, err = program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "viewer failed: %v\n", err)
		os.Exit(1)
	}
}
