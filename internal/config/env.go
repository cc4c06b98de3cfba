package config

import (
	"os"

	"github.com/spf13/viper"
)

// Environment is a snapshot of the environment variables that feed
// argument resolution. It is read once and passed to resolvers explicitly.
type Environment struct {
	Password       string
	HashedPassword string
	LogLevel       string
	Port           string
	ConfigPath     string
	IPCHook        string
	Beta           bool

	XDGDataHome   string
	XDGConfigHome string
	LocalAppData  string
	AppData       string
	Home          string
}

// envBindings maps viper keys to the variables they are read from.
var envBindings = map[string]string{
	"password":        "PASSWORD",
	"hashed_password": "HASHED_PASSWORD",
	"log_level":       "LOG_LEVEL",
	"port":            "PORT",
	"config":          "CODE_SERVER_CONFIG",
	"ipc_hook":        "VSCODE_IPC_HOOK_CLI",
	"beta":            "CS_BETA",
	"xdg_data_home":   "XDG_DATA_HOME",
	"xdg_config_home": "XDG_CONFIG_HOME",
	"local_app_data":  "LOCALAPPDATA",
	"app_data":        "APPDATA",
}

// LoadEnvironment reads the current process environment.
func LoadEnvironment() Environment {
	v := viper.New()
	for key, name := range envBindings {
		_ = v.BindEnv(key, name)
	}

	homeDir, _ := os.UserHomeDir()

	return Environment{
		Password:       v.GetString("password"),
		HashedPassword: v.GetString("hashed_password"),
		LogLevel:       v.GetString("log_level"),
		Port:           v.GetString("port"),
		ConfigPath:     v.GetString("config"),
		IPCHook:        v.GetString("ipc_hook"),
		Beta:           v.GetString("beta") != "",
		XDGDataHome:    v.GetString("xdg_data_home"),
		XDGConfigHome:  v.GetString("xdg_config_home"),
		LocalAppData:   v.GetString("local_app_data"),
		AppData:        v.GetString("app_data"),
		Home:           homeDir,
	}
}

// Export writes the resolved environment back to the process so child
// processes observe the same log level. Passwords that were consumed are
// removed.
func (e Environment) Export() error {
	if e.LogLevel != "" {
		if err := os.Setenv(envBindings["log_level"], e.LogLevel); err != nil {
			return err
		}
	}
	if e.Password == "" {
		if err := os.Unsetenv(envBindings["password"]); err != nil {
			return err
		}
	}
	if e.HashedPassword == "" {
		if err := os.Unsetenv(envBindings["hashed_password"]); err != nil {
			return err
		}
	}
	return nil
}
