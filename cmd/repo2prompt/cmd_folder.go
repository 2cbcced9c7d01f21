package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/martinmagala/repo2prompt/internal/collect"
	"github.com/martinmagala/repo2prompt/internal/config"
)

var (
	folderExcludes []string
	folderWorkers  int
	folderOut      string
)

var folderCmd = &cobra.Command{
	Use:   "folder [path]",
	Short: "Aggregate a local directory into a prompt file",
	Long: "Walks a directory tree and concatenates every supported file into one\n" +
		"formatted document. Excluded directories are pruned by exact path;\n" +
		"path defaults to the current directory.",
	Args: cobra.MaximumNArgs(1),
	RunE: runFolder,
}

func init() {
	folderCmd.Flags().StringSliceVar(&folderExcludes, "exclude", nil, "directory names to prune (default .git,node_modules)")
	folderCmd.Flags().IntVar(&folderWorkers, "workers", 0, "content-load workers (default: number of CPUs)")
	folderCmd.Flags().StringVarP(&folderOut, "out", "o", "folder-formatted-prompt.txt", "output file")
}

func runFolder(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	arg := "."
	if len(args) == 1 {
		arg = args[0]
	}
	root, err := filepath.Abs(arg)
	if err != nil {
		return fmt.Errorf("resolve path %q: %w", arg, err)
	}

	excludes := folderExcludes
	if excludes == nil {
		excludes = cfg.Excludes
	}
	src := &collect.LocalSource{
		Root:       root,
		Exclusions: collect.ResolveExclusions(root, excludes),
	}

	workers := folderWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	doc, err := collect.Aggregator{Workers: workers}.Run(cmd.Context(), src)
	if err != nil {
		return err
	}
	return writeDocument(folderOut, doc)
}
