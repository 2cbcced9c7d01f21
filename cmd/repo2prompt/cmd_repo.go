package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martinmagala/repo2prompt/internal/cache"
	"github.com/martinmagala/repo2prompt/internal/collect"
	"github.com/martinmagala/repo2prompt/internal/config"
	"github.com/martinmagala/repo2prompt/internal/gh"
	"github.com/martinmagala/repo2prompt/internal/gitutil"
	"github.com/martinmagala/repo2prompt/internal/logging"
)

var (
	repoBranch   string
	repoCacheDir string
	repoWorkers  int
	repoOut      string
)

var repoCmd = &cobra.Command{
	Use:   "repo [url]",
	Short: "Aggregate a GitHub repository into a prompt file",
	Long: "Fetches the README and every supported file of a repository through the\n" +
		"GitHub API and writes one formatted document. With no URL argument the\n" +
		"origin remote of the repository in the current directory is used.\n" +
		"Set GITHUB_ACCESS_TOKEN to authenticate requests.",
	Args: cobra.MaximumNArgs(1),
	RunE: runRepo,
}

func init() {
	repoCmd.Flags().StringVar(&repoBranch, "branch", "", "branch for the tree lookup (default main)")
	repoCmd.Flags().StringVar(&repoCacheDir, "cache-dir", "", "cache directory (default .cache)")
	repoCmd.Flags().IntVar(&repoWorkers, "workers", 0, "content-load workers (default: number of CPUs)")
	repoCmd.Flags().StringVarP(&repoOut, "out", "o", "", "output file (default {name}-formatted-prompt.txt)")
}

func runRepo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var rawURL string
	if len(args) == 1 {
		rawURL = args[0]
	} else {
		rawURL, err = gitutil.OriginURL(".")
		if err != nil {
			return fmt.Errorf("no repository URL given and none detected: %w", err)
		}
		logging.New("cli").Info("using origin remote", "url", rawURL)
	}
	ref, err := gh.ParseRepoURL(rawURL)
	if err != nil {
		return err
	}

	client := gh.NewClient(os.Getenv("GITHUB_ACCESS_TOKEN"), cache.New(firstNonEmpty(repoCacheDir, cfg.CacheDir)))
	if cfg.APIBaseURL != "" {
		client.BaseURL = cfg.APIBaseURL
	}

	src := collect.NewRemoteSource(client, ref)
	if branch := firstNonEmpty(repoBranch, cfg.Branch); branch != "" {
		src.Branch = branch
	}

	workers := repoWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	doc, err := collect.Aggregator{Workers: workers}.Run(cmd.Context(), src)
	if err != nil {
		return err
	}

	out := repoOut
	if out == "" {
		out = defaultRepoOutput(ref)
	}
	return writeDocument(out, doc)
}

func defaultRepoOutput(ref gh.Ref) string {
	return ref.Name + "-formatted-prompt.txt"
}
