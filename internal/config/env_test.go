package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PASSWORD", "pw")
	t.Setenv("HASHED_PASSWORD", "hashed")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "7777")
	t.Setenv("CODE_SERVER_CONFIG", "/etc/cs.yaml")
	t.Setenv("VSCODE_IPC_HOOK_CLI", "/tmp/hook.sock")
	t.Setenv("CS_BETA", "1")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	env := LoadEnvironment()

	checks := map[string][2]string{
		"Password":       {env.Password, "pw"},
		"HashedPassword": {env.HashedPassword, "hashed"},
		"LogLevel":       {env.LogLevel, "debug"},
		"Port":           {env.Port, "7777"},
		"ConfigPath":     {env.ConfigPath, "/etc/cs.yaml"},
		"IPCHook":        {env.IPCHook, "/tmp/hook.sock"},
		"XDGDataHome":    {env.XDGDataHome, "/xdg/data"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}
	if !env.Beta {
		t.Error("Beta should be set when CS_BETA is non-empty")
	}
}

func TestLoadEnvironment_Unset(t *testing.T) {
	t.Setenv("CS_BETA", "")
	t.Setenv("PORT", "")

	env := LoadEnvironment()
	if env.Beta {
		t.Error("Beta should be false when CS_BETA is empty")
	}
	if env.Port != "" {
		t.Errorf("Port = %q, want empty", env.Port)
	}
}

func TestEnvironment_Export(t *testing.T) {
	t.Setenv("PASSWORD", "pw")
	t.Setenv("HASHED_PASSWORD", "hashed")
	t.Setenv("LOG_LEVEL", "info")

	env := Environment{LogLevel: "trace", HashedPassword: "hashed"}
	if err := env.Export(); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if got := os.Getenv("LOG_LEVEL"); got != "trace" {
		t.Errorf("LOG_LEVEL = %q, want trace", got)
	}
	if _, ok := os.LookupEnv("PASSWORD"); ok {
		t.Error("PASSWORD should be removed")
	}
	if got := os.Getenv("HASHED_PASSWORD"); got != "hashed" {
		t.Errorf("HASHED_PASSWORD = %q, should be kept", got)
	}
}

func TestPathsFor_Linux(t *testing.T) {
	p := pathsFor("linux", Environment{Home: "/home/u"})

	if p.Data != filepath.Join("/home/u", ".local", "share", "code-server") {
		t.Errorf("Data = %q", p.Data)
	}
	if p.Config != filepath.Join("/home/u", ".config", "code-server") {
		t.Errorf("Config = %q", p.Config)
	}
	if p.LegacyData != "" {
		t.Errorf("Linux has no legacy data dir, got %q", p.LegacyData)
	}
	if filepath.Base(p.SocketReference) != "vscode-ipc" {
		t.Errorf("SocketReference = %q", p.SocketReference)
	}
}

func TestPathsFor_XDG(t *testing.T) {
	p := pathsFor("linux", Environment{Home: "/home/u", XDGDataHome: "/xdg/data", XDGConfigHome: "~/cfg"})

	if p.Data != filepath.Join("/xdg/data", "code-server") {
		t.Errorf("Data = %q", p.Data)
	}
	if p.Config != filepath.Join("/home/u", "cfg", "code-server") {
		t.Errorf("Config = %q", p.Config)
	}
}

func TestPathsFor_Darwin(t *testing.T) {
	p := pathsFor("darwin", Environment{Home: "/Users/u"})

	if p.Data != filepath.Join("/Users/u", ".local", "share", "code-server") {
		t.Errorf("Data = %q", p.Data)
	}
	want := filepath.Join("/Users/u", "Library", "Application Support", "code-server")
	if p.LegacyData != want {
		t.Errorf("LegacyData = %q, want %q", p.LegacyData, want)
	}
}

func TestPathsFor_Windows(t *testing.T) {
	p := pathsFor("windows", Environment{LocalAppData: `C:\local`, AppData: `C:\roaming`})

	if p.Data != filepath.Join(`C:\local`, "code-server", "Data") {
		t.Errorf("Data = %q", p.Data)
	}
	if p.Config != filepath.Join(`C:\roaming`, "code-server", "Config") {
		t.Errorf("Config = %q", p.Config)
	}
}

func TestPaths_Helpers(t *testing.T) {
	p := Paths{Config: "/c"}
	if p.ConfigFile() != filepath.Join("/c", "config.yaml") {
		t.Errorf("ConfigFile = %q", p.ConfigFile())
	}
	if ExtensionsDir("/d") != filepath.Join("/d", "extensions") {
		t.Errorf("ExtensionsDir = %q", ExtensionsDir("/d"))
	}
}
