package services

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"revisor/internal/models"
)

func approval(approver string, decision models.Decision) models.VersionApproval {
	return models.VersionApproval{ApproverID: approver, Decision: decision}
}

func TestDistinctApprovalsLatestDecisionWins(t *testing.T) {
	approvals := []models.VersionApproval{
		approval("alice", models.DecisionApprove),
		approval("bob", models.DecisionReject),
		approval("bob", models.DecisionApprove),
		approval("alice", models.DecisionReject),
	}
	// bob's latest is approve, alice's latest is reject.
	assert.Equal(t, 1, DistinctApprovals(approvals))
}

func TestEvaluateQuorum(t *testing.T) {
	one := []models.VersionApproval{approval("alice", models.DecisionApprove)}
	sameTwice := []models.VersionApproval{
		approval("alice", models.DecisionApprove),
		approval("alice", models.DecisionApprove),
	}
	two := []models.VersionApproval{
		approval("alice", models.DecisionApprove),
		approval("bob", models.DecisionApprove),
	}

	eval := Evaluate(models.StatusPendingReview, 1, one)
	assert.Equal(t, models.StatusApproved, eval.Status)

	eval = Evaluate(models.StatusPendingReview, 2, one)
	assert.Equal(t, models.StatusPendingReview, eval.Status)

	// A repeat approval from the same user is not a second distinct approver.
	eval = Evaluate(models.StatusPendingReview, 2, sameTwice)
	assert.Equal(t, models.StatusPendingReview, eval.Status)
	assert.Equal(t, 1, eval.DistinctApprovalCount)

	eval = Evaluate(models.StatusPendingReview, 2, two)
	assert.Equal(t, models.StatusApproved, eval.Status)
	assert.Equal(t, 2, eval.DistinctApprovalCount)
}

func TestEvaluateRejectDoesNotTerminate(t *testing.T) {
	approvals := []models.VersionApproval{
		approval("alice", models.DecisionReject),
		approval("bob", models.DecisionApprove),
	}
	eval := Evaluate(models.StatusPendingReview, 1, approvals)
	assert.Equal(t, models.StatusApproved, eval.Status)
}

func TestEvaluateLeavesTerminalStatesAlone(t *testing.T) {
	approvals := []models.VersionApproval{
		approval("alice", models.DecisionApprove),
		approval("bob", models.DecisionApprove),
	}
	for _, status := range []models.VersionStatus{
		models.StatusApproved,
		models.StatusRejected,
		models.StatusMerged,
		models.StatusRolledBack,
		models.StatusDraft,
	} {
		eval := Evaluate(status, 1, approvals)
		assert.Equal(t, status, eval.Status)
	}
}

// Quorum correctness over randomized approval sequences: approved iff the
// number of distinct approvers whose most recent decision is approve reaches
// the required count.
func TestEvaluateQuorumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	approvers := make([]string, 10)
	for i := range approvers {
		approvers[i] = fmt.Sprintf("user-%d", i)
	}

	for required := 1; required <= 10; required++ {
		for trial := 0; trial < 40; trial++ {
			n := rng.Intn(21)
			approvals := make([]models.VersionApproval, 0, n)
			for i := 0; i < n; i++ {
				decision := models.DecisionApprove
				if rng.Intn(2) == 0 {
					decision = models.DecisionReject
				}
				approvals = append(approvals, approval(approvers[rng.Intn(len(approvers))], decision))
			}

			// Independent tally: scan backwards for each approver's
			// final decision.
			expected := 0
			for _, who := range approvers {
				for i := len(approvals) - 1; i >= 0; i-- {
					if approvals[i].ApproverID != who {
						continue
					}
					if approvals[i].Decision == models.DecisionApprove {
						expected++
					}
					break
				}
			}

			eval := Evaluate(models.StatusPendingReview, required, approvals)
			assert.Equal(t, expected, eval.DistinctApprovalCount)
			if expected >= required {
				assert.Equal(t, models.StatusApproved, eval.Status)
			} else {
				assert.Equal(t, models.StatusPendingReview, eval.Status)
			}
		}
	}
}

// Appending approvals never decreases the distinct-approve count.
func TestDistinctApprovalsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var approvals []models.VersionApproval
	prev := 0
	for i := 0; i < 50; i++ {
		who := fmt.Sprintf("user-%d", rng.Intn(8))
		approvals = append(approvals, approval(who, models.DecisionApprove))
		count := DistinctApprovals(approvals)
		assert.GreaterOrEqual(t, count, prev)
		prev = count
	}
}
