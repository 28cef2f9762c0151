// Command pox runs the Pox language: no arguments starts an interactive
// REPL, one argument runs that file once.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plu7o/pox/internal/diagnostic"
	"github.com/plu7o/pox/pox"
)

var (
	debug   bool
	noColor bool
	log     = logrus.New()
)

func main() {
	log.SetLevel(logrus.WarnLevel)
	log.SetOutput(os.Stderr)

	root := &cobra.Command{
		Use:   "pox [script]",
		Short: "Pox is a tree-walking interpreter for the Pox scripting language.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
		// cobra prints its own usage + "Error: ..." on an arg-count
		// violation; main then exits with code 2.
	}
	root.Flags().BoolVar(&debug, "debug", false, "enable interpreter debug tracing")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")

	if err := root.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	useColor := !noColor && isatty.IsTerminal(os.Stderr.Fd())
	printer := diagnostic.NewPrinter(os.Stderr, useColor)

	if len(args) == 1 {
		return runFile(args[0], printer)
	}
	runPrompt(printer)
	return nil
}

func runFile(path string, printer *diagnostic.Printer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	log.WithField("path", path).Debug("loading script")

	collector := &diagnostic.Collector{}
	session := pox.NewSession(os.Stdout)
	runErr := session.Run(string(source), collector)

	for _, d := range collector.Diagnostics {
		printer.Report(d)
	}

	switch {
	case runErr != nil:
		os.Exit(70)
	case collector.HadError():
		os.Exit(1)
	}
	return nil
}
