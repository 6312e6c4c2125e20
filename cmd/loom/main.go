package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┌─┐┌─┐┌┬┐
  ║  │ ││ ││││
  ╩═╝└─┘└─┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "The Go UI rendering toolkit",
		Long: `Loom is a client-side UI rendering engine for Go.

Build interactive interfaces from declarative virtual trees with
minimal DOM churn. Features include:

  • Virtual node trees with keyed diffing
  • Incremental patching of live documents
  • Reactive state with batched renders
  • Event delegation and keyboard shortcuts
  • Client-side routing with history
  • Snapshot persistence across sessions`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Loom ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
