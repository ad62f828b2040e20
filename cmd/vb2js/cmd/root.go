package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vb2js",
	Short: "VBA6-to-JS source translator",
	Long: `vb2js converts VBA6 source code into approximately equivalent
JavaScript.

It is a line-oriented, best-effort source-to-source translator: it
tokenizes each physical line and dispatches on the leading keyword,
rewriting control-flow, declarations, and expressions statement by
statement. Constructs it cannot translate are emitted unmodified,
wrapped in an UNTOUCHED comment, so a human can finish the job.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
