package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Per-user directory layout:
//
//	~/.local/share/mathdeck/<user>/<user>.db
//	~/.local/share/mathdeck/<user>/media/

// ProgramDir returns the program's data directory for the current OS.
func ProgramDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "mathdeck"), nil
	default:
		return "", fmt.Errorf("platform %q is not supported yet", runtime.GOOS)
	}
}

// Username returns the active profile name.
// TODO: replace with a real profile selection once multi-user support lands.
func Username() string {
	return "user0"
}

// ListUsers returns the existing user directories under the program dir.
func ListUsers() ([]string, error) {
	dir, err := ProgramDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var users []string
	for _, e := range entries {
		if e.IsDir() {
			users = append(users, e.Name())
		}
	}
	return users, nil
}

// UserDir returns the current user's data directory, creating it and the
// media subdirectory if absent.
func UserDir() (string, error) {
	programDir, err := ProgramDir()
	if err != nil {
		return "", err
	}
	userDir := filepath.Join(programDir, Username())
	if err := os.MkdirAll(filepath.Join(userDir, "media"), 0o755); err != nil {
		return "", err
	}
	return userDir, nil
}

// UserDBPath returns the path of the current user's database file.
func UserDBPath() (string, error) {
	userDir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, Username()+".db"), nil
}

// UserMediaDir returns the current user's media directory.
func UserMediaDir() (string, error) {
	userDir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, "media"), nil
}
