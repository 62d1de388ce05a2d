package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// The SDK infers each tool's input schema from the handler's input struct.

type listStarredInput struct {
	ForceRefresh bool `json:"force_refresh,omitempty"`
}

type repoIDInput struct {
	RepoID string `json:"repo_id"`
}

type folderIDInput struct {
	FolderID string `json:"folder_id"`
}

type createFolderInput struct {
	Name        string   `json:"name"`
	AutoTags    []string `json:"auto_tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

type folderRepoInput struct {
	RepoID   string `json:"repo_id"`
	FolderID string `json:"folder_id"`
}

type moveRepoInput struct {
	RepoID       string `json:"repo_id"`
	FromFolderID string `json:"from_folder_id"`
	ToFolderID   string `json:"to_folder_id"`
}

type emptyInput struct{}

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_starred_repos",
		Description: "List all starred repositories from the local cache, refreshing from GitHub when the cache is stale. Set force_refresh to bypass the cache.",
	}, s.handleListStarred)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_repo",
		Description: "Get a single starred repository by its id.",
	}, s.handleGetRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_repo_readme",
		Description: "Get a repository's README and capability flags (issues, wiki, pages). Fetched from GitHub on first access, cached afterwards.",
	}, s.handleRepoReadme)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_folders",
		Description: "List all virtual folders with their repo counts and auto-tags.",
	}, s.handleListFolders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_folder",
		Description: "Create a virtual folder. auto_tags makes the folder pick up matching repos during categorization; omit it for a manual-only folder.",
	}, s.handleCreateFolder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_folder",
		Description: "Delete a virtual folder and its membership links. The repos themselves are kept. The all-stars folder cannot be deleted.",
	}, s.handleDeleteFolder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_folder_repos",
		Description: "List the repositories in a folder, ordered by stars.",
	}, s.handleFolderRepos)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_folder_stats",
		Description: "Aggregate statistics for one folder: repo count, total and average stars, language histogram.",
	}, s.handleFolderStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_repo_to_folder",
		Description: "Add a repository to a folder as a manual membership. Re-adding is idempotent.",
	}, s.handleAddRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_repo_from_folder",
		Description: "Remove a repository from a folder. Removing a repo that is not in the folder is a no-op.",
	}, s.handleRemoveRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_repo",
		Description: "Move a repository from one folder to another.",
	}, s.handleMoveRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_folders",
		Description: "List the auto-tag folders a repository would match, without changing anything.",
	}, s.handleSuggestFolders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "auto_categorize",
		Description: "Run the auto-categorization sweep over all cached repos. Returns net-new links per folder.",
	}, s.handleAutoCategorize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cache_stats",
		Description: "Local cache statistics: entity counts, oldest snapshot timestamp, TTL.",
	}, s.handleCacheStats)
}

func (s *Server) handleListStarred(ctx context.Context, req *mcp.CallToolRequest, input listStarredInput) (*mcp.CallToolResult, any, error) {
	repos, err := s.loader.LoadStarredRepos(ctx, input.ForceRefresh)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(repos)

	return res, nil, err
}

func (s *Server) handleGetRepo(ctx context.Context, req *mcp.CallToolRequest, input repoIDInput) (*mcp.CallToolResult, any, error) {
	if input.RepoID == "" {
		return nil, nil, errors.New("repo_id is required")
	}

	repo, err := s.store.GetRepo(ctx, input.RepoID)
	if err != nil {
		return nil, nil, err
	}
	if repo == nil {
		return nil, nil, fmt.Errorf("repo %s not found in cache", input.RepoID)
	}

	res, err := textResult(repo)

	return res, nil, err
}

func (s *Server) handleRepoReadme(ctx context.Context, req *mcp.CallToolRequest, input repoIDInput) (*mcp.CallToolResult, any, error) {
	if input.RepoID == "" {
		return nil, nil, errors.New("repo_id is required")
	}

	meta, err := s.loader.RepoMetadata(ctx, input.RepoID, false)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(meta)

	return res, nil, err
}

func (s *Server) handleListFolders(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	folders, err := s.folders.Folders(ctx)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(folders)

	return res, nil, err
}

func (s *Server) handleCreateFolder(ctx context.Context, req *mcp.CallToolRequest, input createFolderInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return nil, nil, errors.New("name is required")
	}

	folder, err := s.folders.CreateFolder(ctx, input.Name, input.AutoTags, input.Description)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(folder)

	return res, nil, err
}

func (s *Server) handleDeleteFolder(ctx context.Context, req *mcp.CallToolRequest, input folderIDInput) (*mcp.CallToolResult, any, error) {
	if input.FolderID == "" {
		return nil, nil, errors.New("folder_id is required")
	}

	if err := s.folders.DeleteFolder(ctx, input.FolderID); err != nil {
		return nil, nil, err
	}

	res, err := textResult(map[string]string{"deleted": input.FolderID})

	return res, nil, err
}

func (s *Server) handleFolderRepos(ctx context.Context, req *mcp.CallToolRequest, input folderIDInput) (*mcp.CallToolResult, any, error) {
	if input.FolderID == "" {
		return nil, nil, errors.New("folder_id is required")
	}

	repos, err := s.folders.FolderRepos(ctx, input.FolderID)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(repos)

	return res, nil, err
}

func (s *Server) handleFolderStats(ctx context.Context, req *mcp.CallToolRequest, input folderIDInput) (*mcp.CallToolResult, any, error) {
	if input.FolderID == "" {
		return nil, nil, errors.New("folder_id is required")
	}

	stats, err := s.folders.FolderStats(ctx, input.FolderID)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(stats)

	return res, nil, err
}

func (s *Server) handleAddRepo(ctx context.Context, req *mcp.CallToolRequest, input folderRepoInput) (*mcp.CallToolResult, any, error) {
	if input.RepoID == "" || input.FolderID == "" {
		return nil, nil, errors.New("repo_id and folder_id are required")
	}

	if err := s.folders.AddRepoToFolder(ctx, input.RepoID, input.FolderID); err != nil {
		return nil, nil, err
	}

	res, err := textResult(map[string]string{"added": input.RepoID, "folder": input.FolderID})

	return res, nil, err
}

func (s *Server) handleRemoveRepo(ctx context.Context, req *mcp.CallToolRequest, input folderRepoInput) (*mcp.CallToolResult, any, error) {
	if input.RepoID == "" || input.FolderID == "" {
		return nil, nil, errors.New("repo_id and folder_id are required")
	}

	if err := s.folders.RemoveRepoFromFolder(ctx, input.RepoID, input.FolderID); err != nil {
		return nil, nil, err
	}

	res, err := textResult(map[string]string{"removed": input.RepoID, "folder": input.FolderID})

	return res, nil, err
}

func (s *Server) handleMoveRepo(ctx context.Context, req *mcp.CallToolRequest, input moveRepoInput) (*mcp.CallToolResult, any, error) {
	if input.RepoID == "" || input.FromFolderID == "" || input.ToFolderID == "" {
		return nil, nil, errors.New("repo_id, from_folder_id and to_folder_id are required")
	}

	if err := s.folders.MoveRepo(ctx, input.RepoID, input.FromFolderID, input.ToFolderID); err != nil {
		return nil, nil, err
	}

	res, err := textResult(map[string]string{
		"moved": input.RepoID,
		"from":  input.FromFolderID,
		"to":    input.ToFolderID,
	})

	return res, nil, err
}

func (s *Server) handleSuggestFolders(ctx context.Context, req *mcp.CallToolRequest, input repoIDInput) (*mcp.CallToolResult, any, error) {
	if input.RepoID == "" {
		return nil, nil, errors.New("repo_id is required")
	}

	repo, err := s.store.GetRepo(ctx, input.RepoID)
	if err != nil {
		return nil, nil, err
	}
	if repo == nil {
		return nil, nil, fmt.Errorf("repo %s not found in cache", input.RepoID)
	}

	suggestions, err := s.folders.SuggestFolders(ctx, repo)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(suggestions)

	return res, nil, err
}

func (s *Server) handleAutoCategorize(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	counts, err := s.folders.AutoCategorizeAll(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(counts)

	return res, nil, err
}

func (s *Server) handleCacheStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, nil, err
	}

	res, err := textResult(stats)

	return res, nil, err
}
