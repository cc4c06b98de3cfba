package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appName = "code-server"

// socketReferenceName is the file the running instance writes its IPC
// socket path to.
const socketReferenceName = "vscode-ipc"

// Paths holds the platform locations used during resolution.
type Paths struct {
	// Data is the default user data directory.
	Data string
	// Config is the directory holding config.yaml.
	Config string
	// LegacyData is a data directory used by older releases on this
	// platform. Empty when the platform never had one.
	LegacyData string
	// SocketReference is the file holding the running instance's socket path.
	SocketReference string
}

// expandPath expands ~ to the user's home directory.
func expandPath(path, homeDir string) string {
	if path == "" || homeDir == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	if path == "~" {
		return homeDir
	}
	return path
}

// DefaultPaths returns the locations for the current platform.
func DefaultPaths(env Environment) Paths {
	return pathsFor(runtime.GOOS, env)
}

func pathsFor(goos string, env Environment) Paths {
	p := Paths{
		SocketReference: filepath.Join(os.TempDir(), socketReferenceName),
	}

	if goos == "windows" {
		localAppData := env.LocalAppData
		if localAppData == "" {
			localAppData = filepath.Join(env.Home, "AppData", "Local")
		}
		appData := env.AppData
		if appData == "" {
			appData = filepath.Join(env.Home, "AppData", "Roaming")
		}
		p.Data = filepath.Join(localAppData, appName, "Data")
		p.Config = filepath.Join(appData, appName, "Config")
		return p
	}

	// Linux and macOS both follow the XDG layout.
	dataHome := expandPath(env.XDGDataHome, env.Home)
	if dataHome == "" {
		dataHome = filepath.Join(env.Home, ".local", "share")
	}
	configHome := expandPath(env.XDGConfigHome, env.Home)
	if configHome == "" {
		configHome = filepath.Join(env.Home, ".config")
	}
	p.Data = filepath.Join(dataHome, appName)
	p.Config = filepath.Join(configHome, appName)

	if goos == "darwin" {
		p.LegacyData = filepath.Join(env.Home, "Library", "Application Support", appName)
	}
	return p
}

// ConfigFile returns the default config file path.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.Config, "config.yaml")
}

// ExtensionsDir returns the extensions directory under a user data dir.
func ExtensionsDir(userDataDir string) string {
	return filepath.Join(userDataDir, "extensions")
}
