package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// DownloadsDirName is the folder used under the user's home directory
const DownloadsDirName = "Downloads"

// maxUniqueAttempts bounds the numbered-suffix search in UniqueFilePath
const maxUniqueAttempts = 10000

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// commandRunner runs an external command; replaced in tests
var commandRunner = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if filePath == "" {
		return errors.New("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return errors.Wrap(err, "file does not exist")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return errors.Wrap(err, "failed to get absolute path")
	}

	switch runtime.GOOS {
	case OSDarwin:
		return commandRunner(OpenCommand, MacOSSelectFlag, absPath)
	case OSWindows:
		return commandRunner(ExplorerCommand, WindowsSelectParam+absPath)
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens the directory containing the file.
// File selection is not standardized on Linux.
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := commandRunner(XDGOpenCommand, dir); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return commandRunner(fm, dir)
		}
	}

	return errors.New("no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// SanitizeFilename strips path separators and characters most file systems reject
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '|', '?', '*':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "video"
	}
	return name
}

// UniqueFilePath returns a path in dir for name that does not exist yet,
// appending " (1)", " (2)"... before the extension when needed.
func UniqueFilePath(dir, name string) (string, error) {
	name = SanitizeFilename(name)
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; i < maxUniqueAttempts; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", errors.Errorf("no free file name for %s in %s", name, dir)
}

// CreateUniqueFile creates a new file in dir named after name, never overwriting an existing one
func CreateUniqueFile(dir, name string) (*os.File, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dir)
	}
	for attempt := 0; attempt < 3; attempt++ {
		path, err := UniqueFilePath(dir, name)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrapf(err, "failed to create %s", path)
		}
	}
	return nil, errors.Errorf("failed to create a unique file for %s", name)
}
