package services

import (
	"revisor/internal/models"
	"revisor/internal/repositories"
)

// Read paths for the excluded HTTP layer. Thin by design: filtering and
// paging live in the repository.

func GetVersion(id string) (*models.VersionRecord, error) {
	return repositories.VersionByID(id)
}

func ListVersions(filter repositories.VersionFilter) ([]models.VersionRecord, int64, error) {
	return repositories.ListVersions(filter)
}

func ListFolders(projectID string) ([]models.Folder, error) {
	return repositories.ListFoldersByProject(projectID)
}

func ListFiles(projectID string) ([]models.File, error) {
	return repositories.ListFilesByProject(projectID)
}
