// repo2prompt aggregates the textual contents of a source tree into a single
// formatted document suitable as an LLM prompt.
//
// Usage:
//
//	repo2prompt repo [url] [--branch=<name>] [-o <file>]
//	repo2prompt folder [path] [--exclude=<dir>] [-o <file>]
//	repo2prompt serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martinmagala/repo2prompt/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	logLevel   string
	logFormat  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "repo2prompt",
	Short: "Aggregate repository contents into one prompt document",
	Long: "repo2prompt concatenates the README and supported source files of a\n" +
		"GitHub repository or local folder into a single fenced-block document,\n" +
		"caching API responses so unchanged repositories are not refetched.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.ParseLevel(logLevel), logFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", envOr("LOG_FORMAT", "text"), "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: ./repo2prompt.yaml when present)")
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
