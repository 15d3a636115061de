package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"newsdesk/agents"
	"newsdesk/bootstrap"
	"newsdesk/config"
	"newsdesk/log"
)

const banner = `newsdesk - your AI news analyst
Ask for headlines, sentiment readings, saved briefings or email digests.
Type "quit" or "exit" to leave.`

func main() {
	// Load .env if present, real env vars still take priority
	_ = godotenv.Load()

	log.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SIGINT/SIGTERM cancel the root context; the loop below observes
	// it and exits after the in-flight turn finishes.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nShutting down...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(ctx, "Failed to load config: %v", err)
	}

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(ctx, "Failed to initialize application: %v", err)
	}

	fmt.Println(banner)

	runREPL(ctx, app.Newsroom, os.Stdin)
}

// runREPL drives the conversation loop until a quit keyword, EOF, or
// context cancellation.
func runREPL(ctx context.Context, newsroom *agents.Newsroom, in io.Reader) {
	// Input is read on its own goroutine so a pending Scan cannot keep
	// the process alive once the context is cancelled.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			log.Errorf(ctx, "Input error: %v", err)
		}
	}()

	// history carries the transcript so follow-up questions and
	// clarification answers keep their context across turns.
	var history strings.Builder

	for {
		fmt.Print("\nyou> ")

		var query string
		select {
		case <-ctx.Done():
			fmt.Println("Goodbye!")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			query = strings.TrimSpace(line)
		}

		if query == "" {
			continue
		}
		if isQuitWord(query) {
			fmt.Println("Goodbye!")
			return
		}

		answer, needsInput, err := newsroom.HandleQuery(ctx, query, history.String())
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println("Goodbye!")
				return
			}
			log.Errorf(ctx, "Query failed: %v", err)
			fmt.Printf("newsdesk> Sorry, something went wrong: %v\n", err)
			continue
		}

		if needsInput {
			// Clarifying question, the next input answers it via history.
			fmt.Printf("newsdesk needs more info> %s\n", answer)
		} else {
			fmt.Printf("newsdesk> %s\n", answer)
		}

		history.WriteString("User: " + query + "\n")
		history.WriteString("Assistant: " + answer + "\n")
	}
}

func isQuitWord(s string) bool {
	switch strings.ToLower(s) {
	case "quit", "exit", "q":
		return true
	}
	return false
}
