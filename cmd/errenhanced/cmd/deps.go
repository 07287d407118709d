package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "List the dependencies an error would record",
	Long: `Runs dependency discovery the way ApplicationState does: the first
installed package manager from the configured list is asked for its
dependency listing.

Examples:
  errenhanced deps
  ERRENHANCED_APPLICATION_STATE_PACKAGE_MANAGERS=npm errenhanced deps`,
	Args: cobra.NoArgs,
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	f, err := newFactory()
	if err != nil {
		printError("setup failed", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := f.New("DependencyProbe", "").FetchDependencies(ctx)
	if err != nil {
		printError("dependency discovery failed", err)
		return err
	}

	if len(deps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no package manager found")
		return nil
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, deps[name])
	}
	return nil
}
