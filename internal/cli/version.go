package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/raysh454/inspectra/internal/analyzer"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styleBrand.Render("Inspectra"), styleValue.Render(Version))
			fmt.Fprintf(out, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "  Go: %s\n", runtime.Version())
			fmt.Fprintf(out, "  Backends: %v\n", analyzer.ListBackends())
		},
	}
}
