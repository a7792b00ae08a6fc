package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// printlnFn is a test seam for user-facing REPL output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Timeline(ctx context.Context) error
	Share(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
}

// runREPL reads commands from r and dispatches them to a until EOF, "exit"
// or "quit", or until ctx is done.
//
// Commands
//
//	Not logged in:
//	  - help             show available commands
//	  - login [user]     start a session
//	  - open <link>      view a share link read-only
//	  - exit | quit      leave the program
//
//	Logged in, additionally:
//	  - add              create a memory
//	  - edit <id>        change fields of a memory
//	  - delete <id>      delete a memory (asks first)
//	  - (l)ist           list your memories
//	  - (t)imeline       your memories by year and month
//	  - share <ids|all> [--via facebook|twitter|whatsapp|email|all]
//	                     create a read-only link, plus intent links
//	  - clear            delete every memory (asks first)
//	  - logout
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r lineReader) {
	for {
		if ctx.Err() != nil {
			return
		}

		r.SetPrompt(fmt.Sprintf("mm %s> ", statusFn()))
		line, err := r.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, edit <id>, delete <id>, (l)ist, (t)imeline, share <ids|all> [--via <platform>], open <link>, clear, logout, exit")
			} else {
				printlnFn("Available commands: login [user], open <link>, exit")
			}

		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "open":
			cmdErr = a.Open(ctx, args)

		case "add", "edit", "delete", "l", "list", "t", "timeline", "share", "clear":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			cmdErr = dispatch(ctx, a, cmd, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "l", "list":
		return a.List(ctx)
	case "t", "timeline":
		return a.Timeline(ctx)
	case "share":
		return a.Share(ctx, args)
	case "clear":
		return a.Clear(ctx)
	}
	return nil
}
