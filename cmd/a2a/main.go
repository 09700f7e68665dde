// Command a2a sends messages to an A2A agent from the command line.
//
// Usage:
//
//	a2a --server-url http://localhost:9999/agent check
//	a2a --server-url http://localhost:9999/agent send --message "Hello"
//	a2a send --input items.jsonl --continue-on-fail --output results.json
//
// Settings not given as flags are read from A2A_* environment variables,
// a .env file or the YAML file passed with --config.
package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
