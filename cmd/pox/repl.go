package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/hashicorp/go-multierror"

	"github.com/plu7o/pox/internal/diagnostic"
	"github.com/plu7o/pox/pox"
)

const replPrompt = "Pox: >> "

// runPrompt is the interactive REPL: one persistent Session evaluates
// successive lines, so a fn or let declared on one line is visible to the
// next. "exit" quits; a per-line error never exits the loop.
func runPrompt(printer *diagnostic.Printer) {
	fmt.Println("POX Repl V.01")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryFile:     historyFilePath(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting REPL: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	session := pox.NewSession(os.Stdout)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			return
		}

		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}

		runLine(session, line, printer)
	}
}

// runLine executes a single REPL line and prints every diagnostic it
// produces, not only the first; the diagnostics are also aggregated into one
// error for the debug log.
func runLine(session *pox.Session, line string, printer *diagnostic.Printer) {
	collector := &diagnostic.Collector{}
	_ = session.Run(line, collector)

	if len(collector.Diagnostics) == 0 {
		return
	}

	var aggregate *multierror.Error
	for _, d := range collector.Diagnostics {
		printer.Report(d)
		aggregate = multierror.Append(aggregate, d)
	}
	log.WithError(aggregate).Debug("line produced diagnostics")
}

func historyFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return dir + "/pox_history"
}
