// Package github wraps the go-github client behind the small surface the
// loader and UI layers consume.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/inovacc/stargazer/internal/core"
	"github.com/inovacc/stargazer/internal/model"
	"golang.org/x/oauth2"
)

const starredPageSize = 100

// Client talks to the GitHub REST API on behalf of the authenticated user.
type Client struct {
	gh *gh.Client
}

// NewClient creates an authenticated GitHub client from a personal access
// token. An empty token yields an unauthenticated client, which works for
// public data at much lower rate limits.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: gh.NewClient(nil)}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Client{gh: gh.NewClient(tc)}
}

// ListStarred fetches every starred repository for the authenticated user,
// following pagination. Rate-limit and credential failures surface as the
// typed errors the loader knows how to fall back from.
func (c *Client) ListStarred(ctx context.Context) ([]*model.StarredRepo, error) {
	opts := &gh.ActivityListStarredOptions{
		ListOptions: gh.ListOptions{PerPage: starredPageSize},
	}

	var repos []*model.StarredRepo

	for {
		page, resp, err := c.gh.Activity.ListStarred(ctx, "", opts)
		if err != nil {
			return nil, classifyError(err)
		}

		for _, starred := range page {
			repos = append(repos, convertStarred(starred))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// GetRepo fetches a single repository by owner and name.
func (c *Client) GetRepo(ctx context.Context, owner, name string) (*model.StarredRepo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classifyError(err)
	}

	return convertRepo(repo, time.Time{}), nil
}

// Star stars a repository for the authenticated user.
func (c *Client) Star(ctx context.Context, owner, name string) error {
	if _, err := c.gh.Activity.Star(ctx, owner, name); err != nil {
		return classifyError(err)
	}
	return nil
}

// Unstar removes a star from a repository.
func (c *Client) Unstar(ctx context.Context, owner, name string) error {
	if _, err := c.gh.Activity.Unstar(ctx, owner, name); err != nil {
		return classifyError(err)
	}
	return nil
}

// FetchMetadata pulls the extended metadata (README plus capability flags)
// for one repository.
func (c *Client) FetchMetadata(ctx context.Context, owner, name string) (*model.RepoMetadata, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classifyError(err)
	}

	meta := &model.RepoMetadata{
		RepoID:          fmt.Sprintf("%d", repo.GetID()),
		ReadmeFormat:    "markdown",
		HasIssues:       repo.GetHasIssues(),
		OpenIssuesCount: repo.GetOpenIssuesCount(),
		HasWiki:         repo.GetHasWiki(),
		HasProjects:     repo.GetHasProjects(),
		HasPages:        repo.GetHasPages(),
		CachedAt:        time.Now().UTC(),
	}

	readme, _, err := c.gh.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		// A missing README is not an error, everything else is
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return meta, nil
		}
		return nil, classifyError(err)
	}

	content, err := readme.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding readme: %w", err)
	}

	meta.ReadmeContent = content
	meta.ReadmeFormat = readmeFormat(readme.GetName())

	return meta, nil
}

// classifyError maps go-github failures onto the domain error kinds the
// sync path distinguishes.
func classifyError(err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return &core.RateLimitError{Err: err}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &core.AuthError{Err: err}
		}
	}

	return err
}

func readmeFormat(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".rst"):
		return "rst"
	case strings.HasSuffix(lower, ".txt"):
		return "txt"
	default:
		return "markdown"
	}
}
