// Package config locates, creates and reads the code-server config file,
// and captures the environment and platform paths resolution depends on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/simpleflo/codeserver/internal/args"
	"github.com/simpleflo/codeserver/internal/observability"
	"github.com/simpleflo/codeserver/pkg/models"
)

// DefaultBindAddr is written to newly created config files.
const DefaultBindAddr = "127.0.0.1:8080"

// ResolveConfigPath picks the config file path: an explicit path wins over
// $CODE_SERVER_CONFIG, which wins over the platform default.
func ResolveConfigPath(explicit string, env Environment, paths Paths) string {
	if explicit != "" {
		return expandPath(explicit, env.Home)
	}
	if env.ConfigPath != "" {
		return expandPath(env.ConfigPath, env.Home)
	}
	return paths.ConfigFile()
}

// GeneratePassword returns a random 24 character password.
func GeneratePassword() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}

// DefaultConfigFile renders the document written on first run.
func DefaultConfigFile(password string) string {
	return fmt.Sprintf(`bind-addr: %s
auth: password
password: %s
cert: false
`, DefaultBindAddr, password)
}

// ReadConfigFile resolves the config path, writes a default config file if
// none exists yet, and parses it. An existing file is never overwritten.
func ReadConfigFile(explicit string, env Environment, paths Paths) (*args.Args, error) {
	configPath := ResolveConfigPath(explicit, env, paths)
	logger := observability.Logger("config")

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return nil, models.Wrap(models.ErrConfigWriteFail, "create config directory", err).
			WithDetails("config_file", configPath)
	}

	written, err := writeIfAbsent(configPath, []byte(DefaultConfigFile(GeneratePassword())))
	if err != nil {
		return nil, models.Wrap(models.ErrConfigWriteFail, "write default config", err).
			WithDetails("config_file", configPath)
	}
	if written {
		observability.LogEvent(logger, observability.EventConfigWritten, map[string]interface{}{
			"config_file": configPath,
		})
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return ParseConfigFile(string(content), configPath)
}

// writeIfAbsent creates path with data unless it already exists.
func writeIfAbsent(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}

// ParseConfigFile converts a YAML document into flag tokens and parses them
// in config-file context. The returned record carries the config path.
func ParseConfigFile(content, configPath string) (*args.Args, error) {
	if content == "" {
		return args.New().With(args.OptConfig, args.StringValue(configPath)), nil
	}

	tokens, err := configTokens(content, configPath)
	if err != nil {
		return nil, err
	}

	parsed, err := args.Parse(tokens, args.ParseOptions{ConfigFile: configPath})
	if err != nil {
		return nil, err
	}
	return parsed.With(args.OptConfig, args.StringValue(configPath)), nil
}

func invalidConfig(configPath, format string, a ...interface{}) error {
	return models.Errorf(models.ErrConfigInvalid, "invalid config: "+format, a...).
		WithDetails("config_file", configPath)
}

// configTokens walks the top-level mapping in document order. A true
// boolean becomes "--key"; any other scalar becomes "--key=value"; a
// sequence of scalars yields one token per item.
func configTokens(content, configPath string) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, models.Wrap(models.ErrConfigInvalid, "invalid config", err).
			WithDetails("config_file", configPath)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, invalidConfig(configPath, "empty document")
	}
	root := doc.Content[0]
	switch {
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return nil, invalidConfig(configPath, "empty document")
	case root.Kind == yaml.ScalarNode:
		return nil, invalidConfig(configPath, "%s", root.Value)
	case root.Kind != yaml.MappingNode:
		return nil, invalidConfig(configPath, "expected a mapping of options")
	}

	tokens := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]

		switch val.Kind {
		case yaml.ScalarNode:
			tokens = append(tokens, scalarToken(key, val))
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, invalidConfig(configPath, "%s: nested values are not supported", key)
				}
				tokens = append(tokens, scalarToken(key, item))
			}
		case yaml.AliasNode:
			if val.Alias == nil || val.Alias.Kind != yaml.ScalarNode {
				return nil, invalidConfig(configPath, "%s: nested values are not supported", key)
			}
			tokens = append(tokens, scalarToken(key, val.Alias))
		default:
			return nil, invalidConfig(configPath, "%s: nested values are not supported", key)
		}
	}
	return tokens, nil
}

func scalarToken(key string, n *yaml.Node) string {
	var b bool
	if n.Tag == "!!bool" && n.Decode(&b) == nil && b {
		return "--" + key
	}
	return "--" + key + "=" + n.Value
}
