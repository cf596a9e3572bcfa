package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "test_dir")

	_, err := os.Stat(testDir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, CreateDirectoryIfNotExists(testDir))
	info, err := os.Stat(testDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call should not fail
	assert.NoError(t, CreateDirectoryIfNotExists(testDir))
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	require.NoError(t, err)
	assert.Equal(t, DownloadsDirName, filepath.Base(downloadsDir))
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "nonexistent.mp4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")

	assert.Error(t, OpenFileInManager(""))
}

func TestOpenFileInManager_WithExistingFile(t *testing.T) {
	if runtime.GOOS != OSDarwin && runtime.GOOS != OSWindows && runtime.GOOS != OSLinux {
		t.Skip("unsupported operating system")
	}

	var calls [][]string
	orig := commandRunner
	commandRunner = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}
	t.Cleanup(func() { commandRunner = orig })

	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, []byte("data"), DefaultFilePermissions))

	require.NoError(t, OpenFileInManager(path))
	require.Len(t, calls, 1)

	switch runtime.GOOS {
	case OSDarwin:
		assert.Equal(t, []string{OpenCommand, MacOSSelectFlag, path}, calls[0])
	case OSWindows:
		assert.Equal(t, []string{ExplorerCommand, WindowsSelectParam + path}, calls[0])
	case OSLinux:
		assert.Equal(t, []string{XDGOpenCommand, filepath.Dir(path)}, calls[0])
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "video.mp4", "video.mp4"},
		{"unix path", "../../etc/video.mp4", "video.mp4"},
		{"windows path", `C:\tmp\video.webm`, "video.webm"},
		{"reserved characters", `a:b*c?.mp4`, "a_b_c_.mp4"},
		{"empty", "  ", "video"},
		{"dot dot", "..", "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestUniqueFilePath(t *testing.T) {
	dir := t.TempDir()

	first, err := UniqueFilePath(dir, "video.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "video.mp4"), first)

	require.NoError(t, os.WriteFile(first, nil, DefaultFilePermissions))
	second, err := UniqueFilePath(dir, "video.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "video (1).mp4"), second)

	require.NoError(t, os.WriteFile(second, nil, DefaultFilePermissions))
	third, err := UniqueFilePath(dir, "video.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "video (2).mp4"), third)
}

func TestCreateUniqueFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	f1, err := CreateUniqueFile(dir, "video.webm")
	require.NoError(t, err)
	require.NoError(t, f1.Close())

	f2, err := CreateUniqueFile(dir, "video.webm")
	require.NoError(t, err)
	require.NoError(t, f2.Close())

	assert.Equal(t, "video.webm", filepath.Base(f1.Name()))
	assert.Equal(t, "video (1).webm", filepath.Base(f2.Name()))
}
