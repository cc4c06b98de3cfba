// Package args defines the code-server option catalog and parses argument
// tokens against it.
package args

// Kind tags the value type of an option.
type Kind int

// Option value kinds.
const (
	KindBoolean Kind = iota
	KindString
	KindStringList
	KindOptionalString
	KindEnum
	KindNumber
)

// String returns the kind name used in help and debug output.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindStringList:
		return "string[]"
	case KindOptionalString:
		return "optional-string"
	case KindEnum:
		return "enum"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// AuthType is the authentication mode.
type AuthType string

// Authentication modes.
const (
	AuthPassword AuthType = "password"
	AuthNone     AuthType = "none"
)

// LogLevel is a code-server log level name.
type LogLevel string

// Log levels, most detailed first.
const (
	LogTrace LogLevel = "trace"
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// LogLevels lists every recognized level, most detailed first.
var LogLevels = []LogLevel{LogTrace, LogDebug, LogInfo, LogWarn, LogError}

// ValidLogLevel reports whether s names a recognized level.
func ValidLogLevel(s string) bool {
	for _, l := range LogLevels {
		if string(l) == s {
			return true
		}
	}
	return false
}

// OptionSpec describes one recognized option.
type OptionSpec struct {
	Name string
	Kind Kind
	// Enum holds the accepted values of a KindEnum option.
	Enum []string
	// Short is the single-dash alias without the dash.
	Short string
	// Path options are resolved to absolute paths when parsed.
	Path bool
	// ConfigOnly options are rejected on the command line.
	ConfigOnly  bool
	Description string
	Beta        bool
	Deprecated  bool
}

// Option names referenced outside the catalog.
const (
	OptAuth           = "auth"
	OptPassword       = "password"
	OptHashedPassword = "hashed-password"
	OptCert           = "cert"
	OptCertKey        = "cert-key"
	OptVersion        = "version"
	OptHelp           = "help"
	OptBindAddr       = "bind-addr"
	OptSocket         = "socket"
	OptUserDataDir    = "user-data-dir"
	OptExtensionsDir  = "extensions-dir"
	OptProxyDomain    = "proxy-domain"
	OptReuseWindow    = "reuse-window"
	OptNewWindow      = "new-window"
	OptLink           = "link"
	OptVerbose        = "verbose"
	OptLog            = "log"
	OptConfig         = "config"
	OptPort           = "port"
	OptHost           = "host"
)

func enumValues[T ~string](vals ...T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// catalog is the ordered option list. Help output follows this order.
var catalog = []OptionSpec{
	{Name: OptAuth, Kind: KindEnum, Enum: enumValues(AuthPassword, AuthNone),
		Description: "The type of authentication to use."},
	{Name: OptPassword, Kind: KindString, ConfigOnly: true,
		Description: "The password for password authentication (can only be passed in via $PASSWORD or the config file)."},
	{Name: OptHashedPassword, Kind: KindString, ConfigOnly: true,
		Description: "The password hashed with argon2 for password authentication (can only be passed in via $HASHED_PASSWORD or the config file).\nTakes precedence over 'password'."},
	{Name: OptCert, Kind: KindOptionalString, Path: true,
		Description: "Path to certificate. A self signed certificate is generated if none is provided."},
	{Name: "cert-host", Kind: KindString,
		Description: "Hostname to use when generating a self signed certificate."},
	{Name: OptCertKey, Kind: KindString, Path: true,
		Description: "Path to certificate key when using non-generated cert."},
	{Name: "disable-telemetry", Kind: KindBoolean,
		Description: "Disable telemetry."},
	{Name: "disable-update-check", Kind: KindBoolean,
		Description: "Disable update check. Without this flag, code-server checks every 6 hours against the latest github release and\nthen notifies you once every week that a new release is available."},
	{Name: "disable-file-downloads", Kind: KindBoolean,
		Description: "Disable file downloads from Code."},
	{Name: "disable-workspace-trust", Kind: KindBoolean,
		Description: "Disable Workspace Trust feature. This switch only affects the current session."},
	{Name: "disable-proxy", Kind: KindBoolean,
		Description: "Disable domain and path proxy routes."},
	{Name: "session-socket", Kind: KindString},
	{Name: OptVersion, Kind: KindBoolean, Short: "v",
		Description: "Display version information."},
	{Name: OptHelp, Kind: KindBoolean, Short: "h",
		Description: "Show this output."},
	{Name: "open", Kind: KindBoolean,
		Description: "Open in browser on startup. Does not work remotely."},
	{Name: OptBindAddr, Kind: KindString,
		Description: "Address to bind to in host:port. You can also use $PORT to override the port."},
	{Name: OptSocket, Kind: KindString, Path: true,
		Description: "Path to a socket (bind-addr will be ignored)."},
	{Name: "socket-mode", Kind: KindString,
		Description: "File mode of the socket."},
	{Name: "trusted-origins", Kind: KindStringList,
		Description: "Disables authenticate origin check for trusted origin. Useful if not able to access reverse proxy configuration."},
	{Name: OptUserDataDir, Kind: KindString, Path: true,
		Description: "Path to the user data directory."},
	{Name: OptExtensionsDir, Kind: KindString, Path: true,
		Description: "Path to the extensions directory."},
	{Name: "builtin-extensions-dir", Kind: KindString, Path: true},
	{Name: "list-extensions", Kind: KindBoolean,
		Description: "List installed VS Code extensions."},
	{Name: "force", Kind: KindBoolean,
		Description: "Avoid prompts when installing VS Code extensions."},
	{Name: "show-versions", Kind: KindBoolean,
		Description: "Show VS Code extension versions."},
	{Name: "install-extension", Kind: KindStringList,
		Description: "Install or update a VS Code extension by id or vsix. The identifier of an extension is `${publisher}.${name}`.\nTo install a specific version provide `@${version}`. For example: 'vscode.csharp@1.2.3'."},
	{Name: "uninstall-extension", Kind: KindStringList,
		Description: "Uninstall a VS Code extension by id."},
	{Name: OptProxyDomain, Kind: KindStringList,
		Description: "Domain used for proxying ports."},
	{Name: "locale", Kind: KindString,
		Description: "The UI language to use."},
	{Name: OptReuseWindow, Kind: KindBoolean, Short: "r",
		Description: "Force to open a file or folder in an already opened window."},
	{Name: OptNewWindow, Kind: KindBoolean, Short: "n",
		Description: "Force to open a new window."},
	{Name: "ignore-last-opened", Kind: KindBoolean, Short: "e",
		Description: "Ignore the last opened directory or workspace in favor of an empty window."},
	{Name: OptLink, Kind: KindOptionalString, Beta: true,
		Description: "Securely bind code-server via our cloud service with the passed name. You'll get a URL like\nhttps://hostname-username.cdr.co at which you can easily access your code-server instance.\nAuthorization is done via GitHub."},
	{Name: "app-name", Kind: KindString,
		Description: "The name to use in branding. Will be shown in titlebar and welcome message"},
	{Name: "welcome-text", Kind: KindString, Deprecated: true,
		Description: "Text to show on login page"},
	{Name: "idle-timeout-seconds", Kind: KindNumber,
		Description: "Timeout in seconds to wait before shutting down when idle."},
	{Name: OptVerbose, Kind: KindBoolean, Short: "vvv",
		Description: "Enable verbose logging."},
	{Name: OptLog, Kind: KindEnum, Enum: enumValues(LogLevels...),
		Description: "Log level to use. Overrides --verbose and $LOG_LEVEL."},
	{Name: OptConfig, Kind: KindString},

	// Legacy flags kept for compatibility; hidden from help.
	{Name: OptPort, Kind: KindNumber},
	{Name: OptHost, Kind: KindString},
}

var byName = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, o := range catalog {
		m[o.Name] = i
	}
	return m
}()

// Lookup returns the option with the given long name.
func Lookup(name string) (OptionSpec, bool) {
	i, ok := byName[name]
	if !ok {
		return OptionSpec{}, false
	}
	return catalog[i], true
}

// LookupShort returns the option whose short flag matches short.
func LookupShort(short string) (OptionSpec, bool) {
	if short == "" {
		return OptionSpec{}, false
	}
	for _, o := range catalog {
		if o.Short == short {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// Options returns a copy of the full catalog in declaration order.
func Options() []OptionSpec {
	out := make([]OptionSpec, len(catalog))
	copy(out, catalog)
	return out
}

// Visible returns the options shown in help output. Options without a
// description are always hidden; beta options only appear when showBeta
// is set.
func Visible(showBeta bool) []OptionSpec {
	var out []OptionSpec
	for _, o := range catalog {
		if o.Description == "" {
			continue
		}
		if o.Beta && !showBeta {
			continue
		}
		out = append(out, o)
	}
	return out
}
