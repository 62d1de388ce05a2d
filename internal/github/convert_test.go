package github

import (
	"testing"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
)

func TestConvertStarred(t *testing.T) {
	created := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	starredAt := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	starred := &gh.StarredRepository{
		StarredAt: &gh.Timestamp{Time: starredAt},
		Repository: &gh.Repository{
			ID:              gh.Ptr(int64(123456)),
			FullName:        gh.Ptr("gin-gonic/gin"),
			Name:            gh.Ptr("gin"),
			Owner:           &gh.User{Login: gh.Ptr("gin-gonic")},
			Description:     gh.Ptr("HTTP web framework"),
			Language:        gh.Ptr("Go"),
			Topics:          []string{"web", "framework"},
			StargazersCount: gh.Ptr(70000),
			ForksCount:      gh.Ptr(8000),
			WatchersCount:   gh.Ptr(70000),
			Archived:        gh.Ptr(false),
			Fork:            gh.Ptr(false),
			CreatedAt:       &gh.Timestamp{Time: created},
			HTMLURL:         gh.Ptr("https://github.com/gin-gonic/gin"),
			CloneURL:        gh.Ptr("https://github.com/gin-gonic/gin.git"),
			DefaultBranch:   gh.Ptr("master"),
			License:         &gh.License{Name: gh.Ptr("MIT License")},
		},
	}

	repo := convertStarred(starred)

	assert.Equal(t, "123456", repo.ID)
	assert.Equal(t, "gin-gonic/gin", repo.FullName)
	assert.Equal(t, "gin", repo.Name)
	assert.Equal(t, "gin-gonic", repo.Owner)
	assert.Equal(t, "Go", repo.Language)
	assert.Equal(t, []string{"web", "framework"}, repo.Topics)
	assert.Equal(t, 70000, repo.StarsCount)
	assert.Equal(t, "master", repo.DefaultBranch)
	assert.Equal(t, "MIT License", repo.License)
	assert.True(t, repo.CreatedAt.Equal(created))
	assert.True(t, repo.StarredAt.Equal(starredAt))
}

func TestConvertRepoDefaultBranchFallback(t *testing.T) {
	repo := convertRepo(&gh.Repository{
		ID:       gh.Ptr(int64(1)),
		FullName: gh.Ptr("a/b"),
	}, time.Time{})

	assert.Equal(t, "main", repo.DefaultBranch)
}

func TestReadmeFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "markdown", path: "README.md", expected: "markdown"},
		{name: "rst", path: "README.rst", expected: "rst"},
		{name: "uppercase rst", path: "README.RST", expected: "rst"},
		{name: "text", path: "README.txt", expected: "txt"},
		{name: "bare readme defaults to markdown", path: "README", expected: "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, readmeFormat(tt.path))
		})
	}
}
