package services

import "revisor/internal/models"

// Evaluation is the approval engine's verdict for one version record.
type Evaluation struct {
	Status                models.VersionStatus
	DistinctApprovalCount int
}

// DistinctApprovals counts the approvers whose most recent decision is
// approve. The approvals slice is expected in chronological order; a later
// reject withdraws an earlier approve from the count, but the recorded rows
// themselves are never rewritten.
func DistinctApprovals(approvals []models.VersionApproval) int {
	latest := make(map[string]models.Decision, len(approvals))
	for _, a := range approvals {
		latest[a.ApproverID] = a.Decision
	}

	count := 0
	for _, decision := range latest {
		if decision == models.DecisionApprove {
			count++
		}
	}
	return count
}

// Evaluate applies the quorum policy to a record's accumulated approvals.
// Pure and deterministic: a pending record becomes approved once the
// distinct-approve count reaches the quorum, every other status passes
// through untouched. Rejections never shrink history and never terminate the
// record on their own; forcing rejected is SetStatus territory.
func Evaluate(status models.VersionStatus, requiredApprovals int, approvals []models.VersionApproval) Evaluation {
	count := DistinctApprovals(approvals)
	if status == models.StatusPendingReview && count >= requiredApprovals {
		return Evaluation{Status: models.StatusApproved, DistinctApprovalCount: count}
	}
	return Evaluation{Status: status, DistinctApprovalCount: count}
}
