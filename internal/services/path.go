package services

import (
	"revisor/internal/models"
	"revisor/internal/repositories"
	"revisor/internal/utils"
)

// ResolvePath normalizes the target location of a file and materializes the
// folder chain for every path segment, linking each folder to its parent.
// Re-resolving the same path never creates duplicate folders; the project+path
// uniqueness constraint backs that up. Returns the file's full relative path
// and its containing folder (nil for the project root).
func ResolvePath(projectID, folderPath, fileName string) (string, *models.Folder, error) {
	relPath, err := utils.NormalizeFilePath(folderPath, fileName)
	if err != nil {
		return "", nil, err
	}

	folder, err := utils.NormalizeFolder(folderPath)
	if err != nil {
		return "", nil, err
	}

	leaf, err := ensureFolderChain(projectID, utils.FolderSegments(folder))
	if err != nil {
		return "", nil, err
	}

	return relPath, leaf, nil
}

func ensureFolderChain(projectID string, segments []string) (*models.Folder, error) {
	var parent *models.Folder
	fullPath := ""

	for _, name := range segments {
		if fullPath == "" {
			fullPath = name
		} else {
			fullPath = fullPath + "/" + name
		}

		existing, err := repositories.FolderByPath(projectID, fullPath)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			folder := &models.Folder{
				ProjectID: projectID,
				Name:      name,
				Path:      fullPath,
			}
			if parent != nil {
				folder.ParentID = &parent.ID
			}
			existing, err = repositories.CreateFolder(folder)
			if err != nil {
				return nil, err
			}
		}
		parent = existing
	}

	return parent, nil
}
