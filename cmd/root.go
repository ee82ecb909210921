package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the schedbot application
var rootCmd = &cobra.Command{
	Use:   "schedbot",
	Short: "Calendar access layer for LLM scheduling assistants",
	Long: `schedbot exposes Google Calendar scheduling operations, time lookups,
IP geolocation and web search to AI assistants.

It can run as:
  - A standalone CLI tool printing today's agenda (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	// Local development configuration; missing file is fine
	_ = godotenv.Load()

	rootCmd.SetVersionTemplate(`{{printf "schedbot version %s\n" .Version}}`)

	// If no subcommand is provided, print today's agenda by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "agenda")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("schedbot version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newAgendaCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
