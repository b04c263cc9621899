package services

import (
	"errors"
	"fmt"

	"revisor/internal/models"
	"revisor/internal/repositories"
	"revisor/pkg/apperrors"
	"revisor/pkg/git"
)

// ProjectPolicy is the versioning policy applied to new version records.
type ProjectPolicy struct {
	ReviewRequired bool
	MinApprovals   int
	BranchStrategy string
}

// CreateProject creates the project row, enrolls the owner as a member and
// ensures the project's repository exists with its root commit.
func CreateProject(name, description, ownerID string, policy ProjectPolicy) (*models.Project, error) {
	if name == "" {
		return nil, errors.New("project name is required")
	}
	if ownerID == "" {
		return nil, errors.New("ownerID is required")
	}
	if policy.MinApprovals < 1 {
		return nil, apperrors.PolicyViolation("minApprovals must be at least 1")
	}

	owner, err := repositories.GetOrCreateUser(ownerID)
	if err != nil {
		return nil, err
	}

	branch := policy.BranchStrategy
	if branch == "" {
		branch = "main"
	}

	project := &models.Project{
		Name:           name,
		Description:    description,
		OwnerID:        owner.ID,
		ReviewRequired: policy.ReviewRequired,
		MinApprovals:   policy.MinApprovals,
		BranchStrategy: branch,
		Status:         models.ProjectActive,
	}
	project, err = repositories.CreateProject(project)
	if err != nil {
		return nil, err
	}

	repoPath, err := git.Repos().Ensure(project.ID)
	if err != nil {
		return nil, fmt.Errorf("ensure repository for project %s: %w", project.ID, err)
	}
	project.RepoPath = repoPath
	if err := repositories.SaveProject(project); err != nil {
		return nil, err
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    owner.ID,
		Role:      models.RoleOwner,
	}
	if err := repositories.AddMember(member); err != nil {
		return nil, err
	}

	return project, nil
}

func GetProject(projectID string) (*models.Project, error) {
	return repositories.ProjectByID(projectID)
}

// requireManager checks that the actor holds owner or maintainer rights on
// the project.
func requireManager(projectID, actorID string) error {
	role, ok, err := repositories.MemberRole(projectID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.PolicyViolation(fmt.Sprintf("user %s is not a member of project %s", actorID, projectID))
	}
	if role != models.RoleOwner && role != models.RoleMaintainer {
		return apperrors.PolicyViolation(fmt.Sprintf("user %s lacks maintainer rights on project %s", actorID, projectID))
	}
	return nil
}

// AddProjectMember enrolls a user; only owners and maintainers may do so.
func AddProjectMember(projectID, actorID, userID string, role models.MemberRole) (*models.ProjectMember, error) {
	if err := requireManager(projectID, actorID); err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleMember
	}

	user, err := repositories.GetOrCreateUser(userID)
	if err != nil {
		return nil, err
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      role,
	}
	if err := repositories.AddMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveProjectMember drops a member. The owner stays accountable for the
// project and cannot be removed.
func RemoveProjectMember(projectID, actorID, userID string) error {
	if err := requireManager(projectID, actorID); err != nil {
		return err
	}

	project, err := repositories.ProjectByID(projectID)
	if err != nil {
		return err
	}
	if project.OwnerID == userID {
		return apperrors.PolicyViolation("project owner cannot be removed")
	}

	return repositories.RemoveMember(projectID, userID)
}

func UpdateProjectMemberRole(projectID, actorID, userID string, role models.MemberRole) error {
	if err := requireManager(projectID, actorID); err != nil {
		return err
	}
	return repositories.UpdateMemberRole(projectID, userID, role)
}
