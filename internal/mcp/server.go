// Package mcp exposes the aggregator over the Model Context Protocol so
// agent hosts can pack a repository or folder into prompt text directly,
// without shelling out to the CLI.
package mcp

import (
	"context"
	"fmt"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/martinmagala/repo2prompt/internal/cache"
	"github.com/martinmagala/repo2prompt/internal/collect"
	"github.com/martinmagala/repo2prompt/internal/gh"
)

// Server wraps the MCP SDK server with the packing tools.
type Server struct {
	MCPServer *sdkmcp.Server

	// Token authenticates GitHub API calls; empty for anonymous access.
	Token string
	// APIBaseURL overrides the GitHub API endpoint (tests, proxies).
	APIBaseURL string
}

// NewServer creates an MCP server with the pack_repo and pack_folder tools.
// The GitHub token is taken from GITHUB_ACCESS_TOKEN.
func NewServer(version string) *Server {
	s := &Server{Token: os.Getenv("GITHUB_ACCESS_TOKEN")}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "repo2prompt", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "pack_repo",
		Description: "Aggregate a GitHub repository's README and source files into one prompt document. Skips content loading when the tree is unchanged since the last pack.",
	}, s.handlePackRepo)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "pack_folder",
		Description: "Aggregate a local directory's source files into one prompt document.",
	}, s.handlePackFolder)
}

type packRepoInput struct {
	URL      string `json:"url" jsonschema:"repository URL, e.g. https://github.com/owner/name"`
	Branch   string `json:"branch,omitempty" jsonschema:"branch for the tree lookup (default main)"`
	CacheDir string `json:"cache_dir,omitempty" jsonschema:"cache directory (default .cache)"`
	Workers  int    `json:"workers,omitempty" jsonschema:"content-load worker count (default: number of CPUs)"`
}

type packRepoOutput struct {
	Repository string `json:"repository"`
	Document   string `json:"document"`
}

type packFolderInput struct {
	Path     string   `json:"path" jsonschema:"directory to scan"`
	Excludes []string `json:"excludes,omitempty" jsonschema:"directory names to prune, joined to the scanned root (default .git, node_modules)"`
	Workers  int      `json:"workers,omitempty" jsonschema:"content-load worker count (default: number of CPUs)"`
}

type packFolderOutput struct {
	Root     string `json:"root"`
	Document string `json:"document"`
}

func (s *Server) handlePackRepo(ctx context.Context, _ *sdkmcp.CallToolRequest, input packRepoInput) (*sdkmcp.CallToolResult, packRepoOutput, error) {
	ref, err := gh.ParseRepoURL(input.URL)
	if err != nil {
		return nil, packRepoOutput{}, err
	}
	client := gh.NewClient(s.Token, cache.New(input.CacheDir))
	if s.APIBaseURL != "" {
		client.BaseURL = s.APIBaseURL
	}
	src := collect.NewRemoteSource(client, ref)
	if input.Branch != "" {
		src.Branch = input.Branch
	}
	doc, err := collect.Aggregator{Workers: input.Workers}.Run(ctx, src)
	if err != nil {
		return nil, packRepoOutput{}, fmt.Errorf("pack %s: %w", ref, err)
	}
	return nil, packRepoOutput{Repository: ref.String(), Document: doc}, nil
}

func (s *Server) handlePackFolder(ctx context.Context, _ *sdkmcp.CallToolRequest, input packFolderInput) (*sdkmcp.CallToolResult, packFolderOutput, error) {
	if input.Path == "" {
		return nil, packFolderOutput{}, fmt.Errorf("path is required")
	}
	src := &collect.LocalSource{
		Root:       input.Path,
		Exclusions: collect.ResolveExclusions(input.Path, input.Excludes),
	}
	doc, err := collect.Aggregator{Workers: input.Workers}.Run(ctx, src)
	if err != nil {
		return nil, packFolderOutput{}, fmt.Errorf("pack %s: %w", input.Path, err)
	}
	return nil, packFolderOutput{Root: input.Path, Document: doc}, nil
}
