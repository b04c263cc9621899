package utils

import (
	gopath "path"
	"strings"

	"revisor/pkg/apperrors"
)

// NormalizeFolder reduces a raw folder path to a clean slash-delimited
// relative path with no leading slash and no doubled separators. The project
// root normalizes to the empty string. Paths that try to climb out of the
// project root are rejected rather than silently clamped.
func NormalizeFolder(raw string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")

	for _, seg := range strings.Split(cleaned, "/") {
		if seg == ".." {
			return "", apperrors.InvalidPath(raw, "escapes project root")
		}
	}

	cleaned = gopath.Clean("/" + cleaned)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." {
		cleaned = ""
	}
	return cleaned, nil
}

// NormalizeFilePath joins a folder path and a file name into the file's full
// relative path inside the project.
func NormalizeFilePath(folderPath, fileName string) (string, error) {
	folder, err := NormalizeFolder(folderPath)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(fileName)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return "", apperrors.InvalidPath(fileName, "invalid file name")
	}

	if folder == "" {
		return name, nil
	}
	return folder + "/" + name, nil
}

// FolderSegments splits a normalized folder path into its segment names.
// The root returns no segments.
func FolderSegments(folder string) []string {
	if folder == "" {
		return nil
	}
	return strings.Split(folder, "/")
}
