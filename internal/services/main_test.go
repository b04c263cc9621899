package services

import (
	"fmt"
	"os/exec"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"revisor/internal/models"
	"revisor/pkg/db/postgres"
	"revisor/pkg/git"
)

var dbSeq atomic.Int64

// setupCore points the repositories at a fresh in-memory database and the
// repository store at a per-test temp directory.
func setupCore(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dsn := fmt.Sprintf("file:revisor_test_%d?mode=memory", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and
	// serializes concurrent access.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, postgres.Migrate(gdb))
	postgres.Use(gdb)

	git.Use(git.NewStore(t.TempDir()))
}

func createTestProject(t *testing.T, ownerID string, reviewRequired bool, minApprovals int) *models.Project {
	t.Helper()
	project, err := CreateProject("test project", "", ownerID, ProjectPolicy{
		ReviewRequired: reviewRequired,
		MinApprovals:   minApprovals,
	})
	require.NoError(t, err)
	return project
}
