package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	SignIn(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the auth client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - signin         — authenticate
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - dashboard      — show the dashboard
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Screens enforce their own guards, so a signed-in user who types "register"
// is redirected to the dashboard rather than shown the form.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("auth> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isSignedIn(ctx) {
				printlnFn("Available commands: dashboard, logout, exit")
			} else {
				printlnFn("Available commands: register, signin, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
