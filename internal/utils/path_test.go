package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revisor/pkg/apperrors"
)

func TestNormalizeFolder(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"root slash", "/", ""},
		{"empty", "", ""},
		{"plain", "docs", "docs"},
		{"nested", "docs/design", "docs/design"},
		{"leading slash", "/docs", "docs"},
		{"trailing slash", "docs/", "docs"},
		{"doubled separators", "docs//design///drafts", "docs/design/drafts"},
		{"backslashes", "docs\\design", "docs/design"},
		{"dot segments", "./docs/./design", "docs/design"},
		{"surrounding space", "  docs  ", "docs"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeFolder(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeFolderRejectsEscapes(t *testing.T) {
	for _, in := range []string{"..", "../etc", "docs/../..", "docs/../../other", "a/../../b"} {
		_, err := NormalizeFolder(in)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPath, "input %q", in)
	}
}

func TestNormalizeFilePath(t *testing.T) {
	got, err := NormalizeFilePath("/docs//design/", "notes.md")
	require.NoError(t, err)
	assert.Equal(t, "docs/design/notes.md", got)

	got, err = NormalizeFilePath("", "readme.md")
	require.NoError(t, err)
	assert.Equal(t, "readme.md", got)
}

func TestNormalizeFilePathRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b", "a\\b", "   "} {
		_, err := NormalizeFilePath("docs", name)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPath, "file name %q", name)
	}
}

func TestFolderSegments(t *testing.T) {
	assert.Nil(t, FolderSegments(""))
	assert.Equal(t, []string{"docs"}, FolderSegments("docs"))
	assert.Equal(t, []string{"docs", "design"}, FolderSegments("docs/design"))
}
