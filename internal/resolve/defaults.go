// Package resolve turns parsed argument records into the effective runtime
// configuration: filled-in directories, the log level and the bind address.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/simpleflo/codeserver/internal/args"
	"github.com/simpleflo/codeserver/internal/config"
	"github.com/simpleflo/codeserver/internal/observability"
)

// Defaulted is the fully resolved configuration.
type Defaulted struct {
	// Args is the merged record with every default applied.
	Args *args.Args
	Addr Addr
	// LogLevel is empty when no source selected a level.
	LogLevel args.LogLevel
	// Env is the environment as it should look after resolution: the log
	// level filled in and consumed passwords cleared.
	Env config.Environment

	UsingEnvPassword       bool
	UsingEnvHashedPassword bool
}

// SetDefaults merges the config file record under the command line record
// and fills in everything left unset. Neither input is modified.
func SetDefaults(ctx context.Context, cli, cfg *args.Args, env config.Environment, paths config.Paths) (*Defaulted, error) {
	if cfg == nil {
		cfg = args.New()
	}
	out := args.Merge(cfg, cli)
	logger := observability.Logger("resolve")

	if !out.Has(args.OptUserDataDir) {
		migrated, err := migrateLegacyDataDir(ctx, paths.LegacyData, paths.Data)
		if err != nil {
			return nil, fmt.Errorf("migrate legacy data dir: %w", err)
		}
		if migrated {
			observability.LogEvent(logger, observability.EventDataDirMigrated, map[string]interface{}{
				"from": paths.LegacyData,
				"to":   paths.Data,
			})
		}
		out.Set(args.OptUserDataDir, args.StringValue(paths.Data))
	}

	if !out.Has(args.OptExtensionsDir) {
		userDataDir, _ := out.Str(args.OptUserDataDir)
		out.Set(args.OptExtensionsDir, args.StringValue(config.ExtensionsDir(userDataDir)))
	}

	level := resolveLogLevel(out, env.LogLevel)
	resolvedEnv := env
	if level != "" {
		resolvedEnv.LogLevel = string(level)
	}

	if !out.Has(args.OptAuth) {
		out.Set(args.OptAuth, args.EnumValue(string(args.AuthPassword)))
	}

	addr, err := BindAddrFromAllSources(cfg, cli, env)
	if err != nil {
		return nil, err
	}

	if out.Has(args.OptLink) {
		addr = Addr{Host: "localhost", Port: 0}
		out.Delete(args.OptSocket)
		out.Delete(args.OptCert)
		out.Set(args.OptAuth, args.EnumValue(string(args.AuthNone)))
	}
	out.Set(args.OptHost, args.StringValue(addr.Host))
	out.Set(args.OptPort, args.NumberValue(addr.Port))

	d := &Defaulted{Addr: addr, LogLevel: level}

	if env.Password != "" {
		out.Set(args.OptPassword, args.StringValue(env.Password))
		d.UsingEnvPassword = true
	}
	if env.HashedPassword != "" {
		out.Set(args.OptHashedPassword, args.StringValue(env.HashedPassword))
		d.UsingEnvHashedPassword = true
	}
	resolvedEnv.Password = ""
	resolvedEnv.HashedPassword = ""

	if out.Has(args.OptProxyDomain) {
		out.Set(args.OptProxyDomain, args.ListValue(dedupeProxyDomains(out.Strings(args.OptProxyDomain))...))
	}

	d.Args = out
	d.Env = resolvedEnv

	logger.Debug().
		Str("addr", addr.String()).
		Str("log_level", string(level)).
		Interface("args", observability.SanitizeForLog(out.LogFields())).
		Msg("resolved defaults")

	return d, nil
}

// resolveLogLevel applies --verbose over --log over $LOG_LEVEL and syncs
// the verbose flag with the chosen level. It writes into out.
func resolveLogLevel(out *args.Args, envLevel string) args.LogLevel {
	var level args.LogLevel
	switch {
	case out.Bool(args.OptVerbose):
		level = args.LogTrace
	case out.Has(args.OptLog):
		s, _ := out.Str(args.OptLog)
		level = args.LogLevel(s)
	case args.ValidLogLevel(envLevel):
		level = args.LogLevel(envLevel)
	}

	if level == "" {
		return ""
	}
	out.Set(args.OptLog, args.EnumValue(string(level)))
	out.Set(args.OptVerbose, args.BoolValue(level == args.LogTrace))
	return level
}

// dedupeProxyDomains strips a leading "*." and drops repeats, keeping the
// first occurrence order.
func dedupeProxyDomains(domains []string) []string {
	seen := make(map[string]bool, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(d, "*.")
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
