package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
)

func testManager(t *testing.T) (*Manager, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(config.PathsConfig{
		BaseDir:      t.TempDir(),
		RawDir:       "raw",
		ProcessedDir: "processed",
		ReportsDir:   "reports",
		LogsDir:      "logs",
	})
	require.NoError(t, paths.EnsureDirectories())
	return NewManager(paths), paths
}

func TestManager_FileExists(t *testing.T) {
	m, paths := testManager(t)

	assert.False(t, m.FileExists("raw/sales.csv"))

	require.NoError(t, os.WriteFile(paths.GetRawPath("sales.csv"), []byte("id\n"), 0644))
	assert.True(t, m.FileExists("raw/sales.csv"))
	assert.True(t, m.FileExists(paths.GetRawPath("sales.csv")))
}

func TestManager_CopyFile(t *testing.T) {
	m, paths := testManager(t)

	content := []byte("id,date\nVND000001,2024-03-10\n")
	require.NoError(t, os.WriteFile(paths.GetRawPath("sales.csv"), content, 0644))

	require.NoError(t, m.CopyFile("raw/sales.csv", "reports/input_snapshot.csv"))

	copied, err := os.ReadFile(paths.GetReportPath("input_snapshot.csv"))
	require.NoError(t, err)
	assert.Equal(t, content, copied)
}

func TestManager_CopyFile_MissingSource(t *testing.T) {
	m, _ := testManager(t)
	assert.Error(t, m.CopyFile("raw/absent.csv", "reports/copy.csv"))
}

func TestManager_GetFileSize(t *testing.T) {
	m, paths := testManager(t)

	require.NoError(t, os.WriteFile(paths.GetRawPath("sales.csv"), []byte("12345"), 0644))

	size, err := m.GetFileSize("raw/sales.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestManager_EnsureDirectory(t *testing.T) {
	m, paths := testManager(t)

	require.NoError(t, m.EnsureDirectory("reports/archive"))

	info, err := os.Stat(filepath.Join(paths.ReportsDir, "archive"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// second call is a no-op
	require.NoError(t, m.EnsureDirectory("reports/archive"))
}

func TestManager_ResolvePath(t *testing.T) {
	m, paths := testManager(t)

	assert.Equal(t, paths.GetRawPath("a.csv"), m.resolvePath("raw/a.csv"))
	assert.Equal(t, paths.GetProcessedPath("b.csv"), m.resolvePath("processed/b.csv"))
	assert.Equal(t, paths.GetReportPath("c.json"), m.resolvePath("reports/c.json"))
	assert.Equal(t, paths.GetLogPath("run.log"), m.resolvePath("logs/run.log"))
	assert.Equal(t, filepath.Join(paths.BaseDir, "other.bin"), m.resolvePath("other.bin"))
	assert.Equal(t, "/abs/file.csv", m.resolvePath("/abs/file.csv"))
}
