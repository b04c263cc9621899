package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core taxonomy. Callers match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPath     = errors.New("invalid path")
	ErrCommit          = errors.New("commit failed")
	ErrUnknownCommit   = errors.New("unknown commit")
	ErrPolicyViolation = errors.New("policy violation")
)

// NotFound reports that an entity id did not resolve.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// InvalidPath reports a path normalization failure.
func InvalidPath(path, reason string) error {
	return fmt.Errorf("path %q: %s: %w", path, reason, ErrInvalidPath)
}

// Commit reports a failed staging or commit inside a project repository.
// Empty staged diffs land here too.
func Commit(projectID string, cause error) error {
	return fmt.Errorf("project %s: %v: %w", projectID, cause, ErrCommit)
}

// UnknownCommit reports a checkout or rollback target that does not exist
// in the project's history.
func UnknownCommit(projectID, commitID string) error {
	return fmt.Errorf("project %s: commit %s: %w", projectID, commitID, ErrUnknownCommit)
}

// PolicyViolation reports a request the project policy forbids, such as a
// non-member approving or a misconfigured quorum.
func PolicyViolation(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrPolicyViolation)
}
