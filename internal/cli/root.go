// Package cli provides the command-line interface for healake.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/healake/internal/cli/commands"
	"github.com/leapstack-labs/healake/internal/cli/output"
	"github.com/leapstack-labs/healake/internal/config"
	"github.com/spf13/cobra"

	// Register the lake adapters.
	_ "github.com/leapstack-labs/healake/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/healake/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/healake/pkg/adapters/sqlite"
)

var (
	cfgFile    string
	targetFlag string
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "healake",
		Short: "healake - high-entropy alloy descriptor lake",
		Long: `healake finds and queries the precomputed descriptor table of a
six-element high-entropy alloy composition.

Compositions are named by their element symbols in any order and case. Queries
run against DuckDB (optionally a DuckLake catalog on S3), PostgreSQL or SQLite.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, targetFlag, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := config.ParseLogLevel(cfg.LogLevel)
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.File != "" {
				logger.Debug("using config file", slog.String("path", cfg.File))
			}
			if targetFlag != "" {
				logger.Debug("using target", slog.String("target", targetFlag))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go and DuckDB
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: healake.yaml in the current or a parent directory)")
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "Entry of environments to use as target (e.g. mirror, local)")
	rootCmd.PersistentFlags().String("type", "", "Target type (duckdb|postgres|sqlite)")
	rootCmd.PersistentFlags().String("database", "", "Database file or name (empty DuckDB path means in-memory)")
	rootCmd.PersistentFlags().Bool("index", false, "Resolve compositions from an in-memory index")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|table|markdown|json|csv)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "table", "markdown", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"duckdb", "postgres", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{Version: Version, BuildDate: BuildDate, GitCommit: GitCommit}))
	rootCmd.AddCommand(commands.NewResolveCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewElementsCommand())
	rootCmd.AddCommand(commands.NewDescriptorsCommand())
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", output.ErrorPrefix(os.Stderr), err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for healake.

To load completions:

Bash:
  $ source <(healake completion bash)

Zsh:
  $ healake completion zsh > "${fpath[1]}/_healake"

Fish:
  $ healake completion fish | source

PowerShell:
  PS> healake completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
