package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revisor/internal/models"
	"revisor/internal/repositories"
	"revisor/pkg/apperrors"
	"revisor/pkg/git"
)

func TestCreateProjectEnsuresRepository(t *testing.T) {
	setupCore(t)

	project := createTestProject(t, "owner", true, 1)

	assert.NotEmpty(t, project.RepoPath)
	_, err := os.Stat(filepath.Join(project.RepoPath, ".git"))
	assert.NoError(t, err, "repository must exist with its root commit")

	head, err := git.Repos().Head(project.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, head)

	// Owner is enrolled as a member.
	members, err := repositories.ListMembers(project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleOwner, members[0].Role)
}

func TestReviewPolicyRoundTrips(t *testing.T) {
	setupCore(t)

	relaxed := createTestProject(t, "owner", false, 1)
	reloaded, err := repositories.ProjectByID(relaxed.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.ReviewRequired, "a review-free policy must survive persistence")

	strict := createTestProject(t, "owner2", true, 2)
	reloaded, err = repositories.ProjectByID(strict.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.ReviewRequired)
	assert.Equal(t, 2, reloaded.MinApprovals)
}

func TestCreateProjectRejectsBrokenQuorum(t *testing.T) {
	setupCore(t)

	_, err := CreateProject("p", "", "owner", ProjectPolicy{ReviewRequired: true, MinApprovals: 0})
	assert.ErrorIs(t, err, apperrors.ErrPolicyViolation)
}

func TestMembershipManagement(t *testing.T) {
	setupCore(t)
	project := createTestProject(t, "owner", true, 1)

	member, err := AddProjectMember(project.ID, "owner", "dev", models.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, member.Role)

	// Plain members cannot manage membership.
	_, err = AddProjectMember(project.ID, "dev", "other", models.RoleMember)
	assert.ErrorIs(t, err, apperrors.ErrPolicyViolation)

	require.NoError(t, UpdateProjectMemberRole(project.ID, "owner", "dev", models.RoleMaintainer))
	role, ok, err := repositories.MemberRole(project.ID, "dev")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.RoleMaintainer, role)

	// The owner stays accountable and cannot be removed.
	err = RemoveProjectMember(project.ID, "dev", "owner")
	assert.ErrorIs(t, err, apperrors.ErrPolicyViolation)

	require.NoError(t, RemoveProjectMember(project.ID, "owner", "dev"))
	_, ok, err = repositories.MemberRole(project.ID, "dev")
	require.NoError(t, err)
	assert.False(t, ok)
}
