// Package commands implements the healake subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/healake/internal/cli/output"
	"github.com/leapstack-labs/healake/internal/config"
	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/leapstack-labs/healake/pkg/hea"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer for cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		var err error
		if cfg, err = config.Load("", "", nil); err != nil {
			return nil, err
		}
	}
	logger := config.GetLogger(cmd.Context())

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}, nil
}

// Lake is an open connection to the configured target.
type Lake struct {
	Adapter adapter.Adapter
	Client  *hea.Client
}

// OpenLake connects to the target and returns a client and a cleanup
// function that must be called (typically via defer).
func (c *CommandContext) OpenLake(ctx context.Context) (*Lake, func(), error) {
	adp, err := adapter.NewAdapter(c.Cfg.Target.AdapterConfig(), c.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := adp.Connect(ctx, c.Cfg.Target.AdapterConfig()); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s target: %w", c.Cfg.Target.Type, err)
	}
	cleanup := func() { _ = adp.Close() }

	client, err := hea.NewClient(adp, c.Cfg.HeaConfig(c.Logger))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return &Lake{Adapter: adp, Client: client}, cleanup, nil
}

// parseSymbols accepts element symbols as separate arguments or joined by
// commas, whitespace or dashes ("Al-Co-Cr-Cu-Fe-Ni").
func parseSymbols(args []string) []string {
	var symbols []string
	for _, arg := range args {
		symbols = append(symbols, strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == '-' || r == ' ' || r == '\t'
		})...)
	}
	return symbols
}
