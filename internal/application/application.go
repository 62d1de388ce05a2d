package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "stargazer"

	// Version is the application version reported by --version and MCP
	Version = "0.3.0"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// Directory returns the stargazer configuration directory path, creating
// it when missing.
// Linux: ~/.config/stargazer (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\stargazer (via os.UserCacheDir)
func Directory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
	if err := os.MkdirAll(appDir, 0o700); err != nil {
		errDir = fmt.Errorf("failed to create config directory: %w", err)
	}
}
