package services

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lib/pq"

	"revisor/internal/models"
	"revisor/internal/notifier"
	"revisor/internal/repositories"
	"revisor/pkg/git"
)

type UploadInput struct {
	ProjectID  string
	FolderPath string
	FileName   string
	Content    []byte
	AuthorID   string
	Message    string
	Branch     string
}

type UploadResult struct {
	File     *models.File
	Version  *models.VersionRecord
	CommitID string
	RepoPath string
}

// UploadAndCommit turns uploaded bytes into one commit in the project's
// repository plus one version record carrying the review state. The record is
// created pending_review under the project quorum, or directly approved when
// the policy does not require review. The file's latestVersionId always moves
// to the new record, whatever its review outcome.
func UploadAndCommit(input UploadInput) (*UploadResult, error) {
	if input.ProjectID == "" {
		return nil, errors.New("projectID is required")
	}
	if input.AuthorID == "" {
		return nil, errors.New("authorID is required")
	}
	if input.Message == "" {
		return nil, errors.New("commit message is required")
	}

	project, err := repositories.ProjectByID(input.ProjectID)
	if err != nil {
		return nil, err
	}

	author, err := repositories.GetOrCreateUser(input.AuthorID)
	if err != nil {
		return nil, err
	}

	relPath, folder, err := ResolvePath(project.ID, input.FolderPath, input.FileName)
	if err != nil {
		return nil, err
	}

	file, err := repositories.FileByProjectAndPath(project.ID, relPath)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &models.File{
			ProjectID: project.ID,
			Path:      relPath,
		}
		if folder != nil {
			file.FolderID = &folder.ID
		}
		file, err = repositories.CreateFile(file)
		if err != nil {
			return nil, err
		}
	}

	commitID, parentID, err := git.Repos().Commit(project.ID, input.Content, relPath, input.Message, git.Author{
		Name:  author.Name,
		Email: author.Email,
	})
	if err != nil {
		return nil, err
	}

	branch := input.Branch
	if branch == "" {
		branch = "main"
	}

	status := models.StatusPendingReview
	requiredApprovals := project.MinApprovals
	if !project.ReviewRequired {
		// Policy says no review: the record is born approved with a
		// zero-approval quorum already satisfied.
		status = models.StatusApproved
		requiredApprovals = 0
	}

	repoPath := git.Repos().RepoPath(project.ID)
	version := &models.VersionRecord{
		ProjectID:         project.ID,
		FileID:            &file.ID,
		CommitID:          commitID,
		ParentCommitIDs:   pq.StringArray{parentID},
		Branch:            branch,
		Message:           input.Message,
		AuthorID:          author.ID,
		Status:            status,
		RequiredApprovals: requiredApprovals,
		StorageKey:        filepath.Join(repoPath, relPath),
		PreviewURL:        fmt.Sprintf("/previews/%s/%s", commitID, relPath),
	}
	version, err = repositories.CreateVersion(version)
	if err != nil {
		return nil, err
	}

	if err := repositories.SetLatestVersion(file.ID, version.ID); err != nil {
		return nil, err
	}

	notifier.Emit(notifier.Event{
		Type:      notifier.EventVersionCreated,
		ProjectID: project.ID,
		ActorID:   author.ID,
		EntityID:  version.ID,
		Message:   input.Message,
	})
	if status == models.StatusPendingReview {
		notifier.ScheduleReviewReminder(version.ID)
	}

	return &UploadResult{
		File:     file,
		Version:  version,
		CommitID: commitID,
		RepoPath: repoPath,
	}, nil
}
