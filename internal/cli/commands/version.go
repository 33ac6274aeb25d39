package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/spf13/cobra"
)

// BuildInfo carries the values stamped into the binary at build time.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display healake version, build metadata and the registered database adapters.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "healake v%s\n", info.Version)
			_, _ = fmt.Fprintln(w, "High-entropy alloy descriptor lake client built with Go and DuckDB")
			if info.GitCommit != "" {
				_, _ = fmt.Fprintf(w, "commit:   %s\n", info.GitCommit)
			}
			if info.BuildDate != "" {
				_, _ = fmt.Fprintf(w, "built:    %s\n", info.BuildDate)
			}
			_, _ = fmt.Fprintf(w, "go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if names := adapter.ListAdapters(); len(names) > 0 {
				_, _ = fmt.Fprintf(w, "adapters: %s\n", strings.Join(names, ", "))
			}
		},
	}
}
