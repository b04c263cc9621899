package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"revisor/pkg/apperrors"
)

// Author is the identity embedded in commit metadata. It names who produced
// the content, never the actor who triggered the API call.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	name := a.Name
	if name == "" {
		name = "unknown"
	}
	email := a.Email
	if email == "" {
		email = "unknown@example.com"
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Store manages one git repository per project under a shared root directory.
// Commit, Checkout and Ensure mutate the working tree and are serialized per
// project id; operations on different projects run in parallel. Handles are
// never shared: every call shells out fresh inside the critical section.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(root string) *Store {
	return &Store{
		root:  root,
		locks: make(map[string]*sync.Mutex),
	}
}

// RepoPath returns the on-disk location for a project's repository.
func (s *Store) RepoPath(projectID string) string {
	return filepath.Join(s.root, projectID)
}

func (s *Store) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[projectID] = l
	}
	return l
}

// run executes a git command inside repoPath.
func (s *Store) run(repoPath string, args ...string) (string, error) {
	log.Debugf("git %s in %s", strings.Join(args, " "), repoPath)

	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w: %s", args[0], err, output)
	}

	return output, nil
}

// Ensure creates the project repository and its root commit if absent.
// It is idempotent: re-running against an existing repository changes
// nothing and returns the same path.
func (s *Store) Ensure(projectID string) (string, error) {
	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	return s.ensure(projectID)
}

func (s *Store) ensure(projectID string) (string, error) {
	repoPath := s.RepoPath(projectID)
	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		return "", fmt.Errorf("create repo dir: %w", err)
	}

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		return repoPath, nil
	}

	if _, err := s.run(repoPath, "init"); err != nil {
		return "", err
	}
	// Local identity so commits work without a global git config.
	if _, err := s.run(repoPath, "config", "user.name", "revisor"); err != nil {
		return "", err
	}
	if _, err := s.run(repoPath, "config", "user.email", "revisor@localhost"); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(repoPath, ".gitkeep"), nil, 0o644); err != nil {
		return "", err
	}
	if _, err := s.run(repoPath, "add", "."); err != nil {
		return "", err
	}
	if _, err := s.run(repoPath, "commit", "-m", "chore: init repo"); err != nil {
		return "", err
	}

	return repoPath, nil
}

// Commit writes content at relPath inside the project repository, stages
// exactly that path and commits it under the supplied author identity.
// A write that leaves the staged diff empty is rejected: an empty commit is
// not useful history. Returns the new commit id and its parent.
func (s *Store) Commit(projectID string, content []byte, relPath, message string, author Author) (commitID, parentID string, err error) {
	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	repoPath, err := s.ensure(projectID)
	if err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}

	parentID, err = s.head(repoPath)
	if err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}

	destPath := filepath.Join(repoPath, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}
	if err := os.WriteFile(destPath, content, 0o644); err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}

	if _, err := s.run(repoPath, "add", "--", relPath); err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}

	// diff --cached exits 0 when nothing is staged for the path.
	if _, err := s.run(repoPath, "diff", "--cached", "--quiet", "--", relPath); err == nil {
		return "", "", apperrors.Commit(projectID, errors.New("empty commit: content unchanged"))
	}

	if _, err := s.run(repoPath, "commit", "-m", message, "--author", author.String(), "--", relPath); err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}

	commitID, err = s.head(repoPath)
	if err != nil {
		return "", "", apperrors.Commit(projectID, err)
	}

	return commitID, parentID, nil
}

// Checkout moves the project's working tree to a historical commit.
func (s *Store) Checkout(projectID, commitID string) (string, error) {
	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	repoPath := s.RepoPath(projectID)
	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err != nil {
		return "", apperrors.UnknownCommit(projectID, commitID)
	}

	if _, err := s.run(repoPath, "cat-file", "-e", commitID+"^{commit}"); err != nil {
		return "", apperrors.UnknownCommit(projectID, commitID)
	}

	if _, err := s.run(repoPath, "checkout", commitID); err != nil {
		return "", fmt.Errorf("checkout %s: %w", commitID, err)
	}

	return repoPath, nil
}

// Head returns the project's current commit id.
func (s *Store) Head(projectID string) (string, error) {
	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	return s.head(s.RepoPath(projectID))
}

func (s *Store) head(repoPath string) (string, error) {
	return s.run(repoPath, "rev-parse", "HEAD")
}
