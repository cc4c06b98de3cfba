// Package main is the entry point for code-server argument resolution.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simpleflo/codeserver/internal/args"
	"github.com/simpleflo/codeserver/internal/config"
	"github.com/simpleflo/codeserver/internal/instance"
	"github.com/simpleflo/codeserver/internal/observability"
	"github.com/simpleflo/codeserver/internal/resolve"
	"github.com/simpleflo/codeserver/pkg/models"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "code-server [options] [path]",
		Short: "Run VS Code on a remote server",
		// The option catalog owns the whole argv.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, argv []string) error {
			return run(cmd.Context(), argv, cmd.OutOrStdout())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, argv []string, stdout io.Writer) error {
	env := config.LoadEnvironment()
	observability.SetupDefaultLogging(initialLogLevel(env))

	cli, err := args.Parse(argv, args.ParseOptions{})
	if err != nil {
		return err
	}

	if cli.Bool(args.OptHelp) {
		printHelp(stdout, env.Beta)
		return nil
	}
	if cli.Bool(args.OptVersion) {
		fmt.Fprintf(stdout, "%s (built %s)\n", Version, BuildTime)
		return nil
	}

	paths := config.DefaultPaths(env)
	explicitConfig, _ := cli.Str(args.OptConfig)
	cfg, err := config.ReadConfigFile(explicitConfig, env, paths)
	if err != nil {
		return err
	}

	resolved, err := resolve.SetDefaults(ctx, cli, cfg, env, paths)
	if err != nil {
		return err
	}
	if err := resolved.Env.Export(); err != nil {
		return fmt.Errorf("export environment: %w", err)
	}
	if resolved.LogLevel != "" {
		observability.SetupDefaultLogging(string(resolved.LogLevel))
	}

	logger := observability.Logger("main")

	socketPath, err := instance.ShouldOpenInExistingInstance(ctx, cli, env, instance.DetectOptions{
		ReferencePath: paths.SocketReference,
	})
	if err != nil {
		return err
	}
	if socketPath != "" {
		req, err := instance.NewOpenRequest(cli)
		if err != nil {
			return err
		}
		return instance.NewClient(socketPath).Open(ctx, req)
	}

	auth, _ := resolved.Args.Str(args.OptAuth)
	userDataDir, _ := resolved.Args.Str(args.OptUserDataDir)
	configFile, _ := resolved.Args.Str(args.OptConfig)
	logger.Info().
		Str("addr", resolved.Addr.String()).
		Str("auth", auth).
		Str("config", configFile).
		Str("user_data_dir", userDataDir).
		Bool("using_env_password", resolved.UsingEnvPassword).
		Bool("using_env_hashed_password", resolved.UsingEnvHashedPassword).
		Msg("configuration resolved")

	return nil
}

// initialLogLevel is used until the arguments are resolved.
func initialLogLevel(env config.Environment) string {
	if args.ValidLogLevel(env.LogLevel) {
		return env.LogLevel
	}
	return string(args.LogInfo)
}

func printHelp(w io.Writer, showBeta bool) {
	fmt.Fprintf(w, "Usage: code-server [options] [path]\n")
	fmt.Fprintf(w, "    - Opening a directory: code-server ./path/to/your/project\n")
	fmt.Fprintf(w, "    - Opening a saved workspace: code-server ./path/to/your/project.code-workspace\n")
	fmt.Fprintf(w, "\nOptions\n")
	fmt.Fprintln(w, strings.Join(args.Descriptions(showBeta), "\n"))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	var csErr *models.CodeServerError
	if errors.As(err, &csErr) {
		if s, ok := csErr.Details["suggestion"].(string); ok {
			fmt.Fprintf(w, "Did you mean %s?\n", s)
		}
	}
}
