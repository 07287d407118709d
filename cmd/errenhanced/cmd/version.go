package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/errenhanced/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		if info.Revision == "" {
			info.Revision = "development"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "errenhanced v%s\n", version.CLI)
		fmt.Fprintf(out, "  Library:    %s\n", info.Version)
		fmt.Fprintf(out, "  Serializer: %s\n", version.Serializer)
		fmt.Fprintf(out, "  Enhancers:  %s\n", version.Enhancers)
		fmt.Fprintf(out, "  Revision:   %s\n", info.Revision)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
