package services

import (
	"fmt"

	"revisor/internal/models"
	"revisor/internal/notifier"
	"revisor/internal/repositories"
	"revisor/pkg/apperrors"
)

// AddApproval appends one review decision to a version record and re-runs the
// quorum evaluation. Appending is always legal for project members, repeat
// approvers included; only the evaluation outcome decides whether the status
// moves.
func AddApproval(versionID, userID string, decision models.Decision, comment string) (*models.VersionRecord, error) {
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return nil, fmt.Errorf("unknown decision %q", decision)
	}

	version, err := repositories.VersionByID(versionID)
	if err != nil {
		return nil, err
	}

	_, isMember, err := repositories.MemberRole(version.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.PolicyViolation(fmt.Sprintf("user %s is not a member of project %s", userID, version.ProjectID))
	}

	approval := &models.VersionApproval{
		ApproverID: userID,
		Decision:   decision,
		Comment:    comment,
	}
	if err := repositories.AppendApproval(versionID, approval); err != nil {
		return nil, err
	}

	// Re-read the full list so concurrent appenders all converge on the
	// same count.
	approvals, err := repositories.ApprovalsByVersion(versionID)
	if err != nil {
		return nil, err
	}

	eval := Evaluate(version.Status, version.RequiredApprovals, approvals)
	if eval.Status != version.Status {
		if err := repositories.SetVersionStatus(versionID, eval.Status); err != nil {
			return nil, err
		}
		notifier.ClearReviewReminder(versionID)
		notifier.Emit(notifier.Event{
			Type:      notifier.EventVersionApproved,
			ProjectID: version.ProjectID,
			ActorID:   userID,
			EntityID:  versionID,
			Message:   fmt.Sprintf("quorum reached with %d approvals", eval.DistinctApprovalCount),
		})
	} else {
		notifier.Emit(notifier.Event{
			Type:      notifier.EventVersionDecision,
			ProjectID: version.ProjectID,
			ActorID:   userID,
			EntityID:  versionID,
			Message:   string(decision),
		})
	}

	return repositories.VersionByID(versionID)
}

// SetStatus forces a status transition. Available to maintainers and owners
// regardless of the recorded approval count; this manual override mirrors the
// decoupling of approval tallies from status and is deliberate. Transitions
// still have to follow the state machine's edges, so terminal records stay
// terminal.
func SetStatus(versionID, actorID string, status models.VersionStatus) (*models.VersionRecord, error) {
	version, err := repositories.VersionByID(versionID)
	if err != nil {
		return nil, err
	}

	if err := requireManager(version.ProjectID, actorID); err != nil {
		return nil, err
	}

	if !version.Status.CanTransitionTo(status) {
		return nil, apperrors.PolicyViolation(fmt.Sprintf("cannot move version %s from %s to %s", versionID, version.Status, status))
	}

	if err := repositories.SetVersionStatus(versionID, status); err != nil {
		return nil, err
	}

	if status == models.StatusApproved || status.Terminal() {
		notifier.ClearReviewReminder(versionID)
	}
	eventType := notifier.EventVersionDecision
	switch status {
	case models.StatusApproved:
		eventType = notifier.EventVersionApproved
	case models.StatusRejected:
		eventType = notifier.EventVersionRejected
	}
	notifier.Emit(notifier.Event{
		Type:      eventType,
		ProjectID: version.ProjectID,
		ActorID:   actorID,
		EntityID:  versionID,
		Message:   fmt.Sprintf("status set to %s", status),
	})

	return repositories.VersionByID(versionID)
}
