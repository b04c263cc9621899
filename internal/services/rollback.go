package services

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"revisor/internal/models"
	"revisor/internal/notifier"
	"revisor/internal/repositories"
	"revisor/pkg/apperrors"
	"revisor/pkg/git"
)

// ExecuteRollback moves a project's working tree back to a historical commit
// and records the attempt. Exactly one rollback record is created per
// attempt; it ends completed only after the checkout durably succeeded, and
// failed otherwise. A failed checkout is captured in the record, never
// propagated raw. Version records created after the target commit keep their
// status; rollback is an audit entry plus a tree move, not history rewriting.
func ExecuteRollback(projectID, targetCommitID, initiatorID, note string) (*models.RollbackRecord, error) {
	if projectID == "" || targetCommitID == "" {
		return nil, errors.New("projectID and targetCommitID are required")
	}

	if _, err := repositories.ProjectByID(projectID); err != nil {
		return nil, err
	}
	initiator, err := repositories.GetOrCreateUser(initiatorID)
	if err != nil {
		return nil, err
	}

	rollback := &models.RollbackRecord{
		ProjectID:      projectID,
		TargetCommitID: targetCommitID,
		InitiatorID:    initiator.ID,
		Status:         models.RollbackPending,
		Note:           note,
	}
	rollback, err = repositories.CreateRollback(rollback)
	if err != nil {
		return nil, err
	}

	// The target must be a commit some version record tracks; only then is
	// the working tree touched.
	var execErr error
	if _, err := repositories.VersionByCommitID(projectID, targetCommitID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		execErr = apperrors.UnknownCommit(projectID, targetCommitID)
	} else {
		_, execErr = git.Repos().Checkout(projectID, targetCommitID)
	}
	if execErr != nil {
		err := execErr
		log.Errorf("rollback %s: checkout %s failed: %v", rollback.ID, targetCommitID, err)

		failNote := note
		if failNote != "" {
			failNote += "; "
		}
		failNote += err.Error()
		if err := repositories.CompleteRollback(rollback.ID, models.RollbackFailed, failNote); err != nil {
			return nil, err
		}
		notifier.Emit(notifier.Event{
			Type:      notifier.EventRollbackFailed,
			ProjectID: projectID,
			ActorID:   initiator.ID,
			EntityID:  rollback.ID,
			Message:   failNote,
		})
		return repositories.RollbackByID(rollback.ID)
	}

	if err := repositories.CompleteRollback(rollback.ID, models.RollbackCompleted, note); err != nil {
		return nil, err
	}
	notifier.Emit(notifier.Event{
		Type:      notifier.EventRollbackCompleted,
		ProjectID: projectID,
		ActorID:   initiator.ID,
		EntityID:  rollback.ID,
		Message:   "working tree moved to " + targetCommitID,
	})

	return repositories.RollbackByID(rollback.ID)
}

func GetRollback(id string) (*models.RollbackRecord, error) {
	return repositories.RollbackByID(id)
}

func ListRollbacks(projectID string) ([]models.RollbackRecord, error) {
	return repositories.ListRollbacksByProject(projectID)
}
