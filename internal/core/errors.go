package core

import (
	"errors"
	"fmt"
)

// DuplicateNameError indicates a folder name that already exists.
// Callers are expected to catch it and skip or prompt.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("folder %q already exists", e.Name)
}

// IsDuplicateName reports whether err is a duplicate folder name error.
func IsDuplicateName(err error) bool {
	var dup *DuplicateNameError
	return errors.As(err, &dup)
}

// ReservedFolderError indicates an attempt to delete the All Stars folder.
type ReservedFolderError struct {
	ID string
}

func (e *ReservedFolderError) Error() string {
	return fmt.Sprintf("folder %q is reserved and cannot be deleted", e.ID)
}

// RateLimitError indicates the GitHub API rejected a call due to rate
// limiting. The sync path treats it as upstream-unavailable and falls back
// to the cache.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github rate limit exceeded: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// AuthError indicates the GitHub API rejected the configured credentials.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("github authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsUpstreamUnavailable reports whether err represents a GitHub failure the
// loader may recover from by serving stale cache data.
func IsUpstreamUnavailable(err error) bool {
	var rate *RateLimitError
	var auth *AuthError
	return errors.As(err, &rate) || errors.As(err, &auth)
}

// SyncStatus is the coarse result of a best-effort reconciliation step.
type SyncStatus int

const (
	SyncApplied SyncStatus = iota
	SyncSkipped
	SyncFailed
)

func (s SyncStatus) String() string {
	switch s {
	case SyncApplied:
		return "applied"
	case SyncSkipped:
		return "skipped"
	case SyncFailed:
		return "failed"
	}
	return "unknown"
}

// SyncOutcome reports what a best-effort sync step did. Background steps
// return an outcome instead of raising so startup never aborts on
// non-critical failures and tests can assert on the swallowed path.
type SyncOutcome struct {
	Status SyncStatus
	Added  int
	Err    error
}
