package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatStars(t *testing.T) {
	tests := []struct {
		name     string
		stars    int
		expected string
	}{
		{name: "zero", stars: 0, expected: "0"},
		{name: "below a thousand", stars: 999, expected: "999"},
		{name: "exactly a thousand", stars: 1000, expected: "1.0k"},
		{name: "rounds to one decimal", stars: 45251, expected: "45.3k"},
		{name: "large", stars: 120000, expected: "120.0k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := StarredRepo{StarsCount: tt.stars}
			assert.Equal(t, tt.expected, repo.FormatStars())
		})
	}
}

func TestFormatUpdated(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		updatedAt time.Time
		expected  string
	}{
		{name: "zero time", updatedAt: time.Time{}, expected: "unknown"},
		{name: "minutes ago", updatedAt: now.Add(-10 * time.Minute), expected: "just now"},
		{name: "hours ago", updatedAt: now.Add(-5 * time.Hour), expected: "5h ago"},
		{name: "days ago", updatedAt: now.Add(-3 * 24 * time.Hour), expected: "3d ago"},
		{name: "weeks ago", updatedAt: now.Add(-15 * 24 * time.Hour), expected: "2w ago"},
		{name: "months ago", updatedAt: now.Add(-70 * 24 * time.Hour), expected: "2mo ago"},
		{name: "years ago", updatedAt: now.Add(-800 * 24 * time.Hour), expected: "2y ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := StarredRepo{UpdatedAt: tt.updatedAt}
			assert.Equal(t, tt.expected, repo.FormatUpdated())
		})
	}
}
