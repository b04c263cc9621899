package services

import (
	"errors"
	"fmt"
	"time"

	"revisor/internal/models"
	"revisor/internal/notifier"
	"revisor/internal/repositories"
	"revisor/pkg/apperrors"
)

const invitationTTL = 7 * 24 * time.Hour

// CreateInvitation records a pending invite and emits the payload for the
// mail collaborator to render and deliver.
func CreateInvitation(projectID, inviterID, inviteeEmail string, role models.MemberRole) (*models.Invitation, error) {
	if inviteeEmail == "" {
		return nil, errors.New("inviteeEmail is required")
	}
	if err := requireManager(projectID, inviterID); err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleMember
	}

	project, err := repositories.ProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(invitationTTL)
	invitation := &models.Invitation{
		ProjectID:    projectID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Role:         role,
		Status:       models.InvitePending,
		ExpiresAt:    &expiresAt,
	}
	invitation, err = repositories.CreateInvitation(invitation)
	if err != nil {
		return nil, err
	}

	notifier.Emit(notifier.Event{
		Type:      notifier.EventInvitationCreated,
		ProjectID: projectID,
		ActorID:   inviterID,
		EntityID:  invitation.ID,
		Message:   fmt.Sprintf("%s invited %s to %s as %s", inviterID, inviteeEmail, project.Name, role),
	})

	return invitation, nil
}

// RespondInvitation accepts or declines a pending invite by token. Accepting
// enrolls the responding user as a project member with the invited role.
func RespondInvitation(token, userID string, accept bool) (*models.Invitation, error) {
	invitation, err := repositories.InvitationByToken(token)
	if err != nil {
		return nil, err
	}

	if invitation.Status != models.InvitePending {
		return nil, apperrors.PolicyViolation(fmt.Sprintf("invitation %s is already %s", invitation.ID, invitation.Status))
	}
	if invitation.ExpiresAt != nil && invitation.ExpiresAt.Before(time.Now()) {
		if err := repositories.SetInvitationStatus(invitation.ID, models.InviteExpired, nil); err != nil {
			return nil, err
		}
		return nil, apperrors.PolicyViolation(fmt.Sprintf("invitation %s has expired", invitation.ID))
	}

	status := models.InviteDeclined
	if accept {
		status = models.InviteAccepted

		user, err := repositories.GetOrCreateUser(userID)
		if err != nil {
			return nil, err
		}
		if user.Email == "" {
			user.Email = invitation.InviteeEmail
			if err := repositories.SaveUser(user); err != nil {
				return nil, err
			}
		}

		_, alreadyMember, err := repositories.MemberRole(invitation.ProjectID, userID)
		if err != nil {
			return nil, err
		}
		if !alreadyMember {
			member := &models.ProjectMember{
				ProjectID: invitation.ProjectID,
				UserID:    userID,
				Role:      invitation.Role,
			}
			if err := repositories.AddMember(member); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	if err := repositories.SetInvitationStatus(invitation.ID, status, &now); err != nil {
		return nil, err
	}

	return repositories.InvitationByID(invitation.ID)
}

// ListInvitations returns a project's invitations newest first. Restricted
// to owners and maintainers, like sending them.
func ListInvitations(projectID, actorID string) ([]models.Invitation, error) {
	if err := requireManager(projectID, actorID); err != nil {
		return nil, err
	}
	return repositories.ListInvitationsByProject(projectID)
}

// ExpireInvitation marks a pending invite expired.
func ExpireInvitation(id string) (*models.Invitation, error) {
	invitation, err := repositories.InvitationByID(id)
	if err != nil {
		return nil, err
	}
	if invitation.Status != models.InvitePending {
		return nil, apperrors.PolicyViolation(fmt.Sprintf("invitation %s is already %s", invitation.ID, invitation.Status))
	}
	if err := repositories.SetInvitationStatus(id, models.InviteExpired, nil); err != nil {
		return nil, err
	}
	return repositories.InvitationByID(id)
}
