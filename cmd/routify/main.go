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
  ╦═╗┌─┐┬ ┬┌┬┐┬┌─┐┬ ┬
  ╠╦╝│ ││ │ │ │├┤ └┬┘
  ╩╚═└─┘└─┘ ┴ ┴└   ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "routify",
		Short: "Declarative routing for server-driven web applications",
		Long: `Routify is a declarative, attribute-driven router.

Components declare path templates; the engine matches them against
the current location, toggles active flags, and runs lifecycle
hooks. A WebSocket bridge drives a thin browser client:

  • Path templates with :params, * wildcards, and #hash constraints
  • Routing groups with fallback components
  • Click interception and history integration
  • Binary patch protocol over WebSocket
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Routify ASCII art banner.
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
