package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/vba2js/pkg/vbconv"
	"github.com/spf13/cobra"
)

var (
	evalExpr     string
	outputPath   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Translate a VBA6 source file into JS",
	Long: `Translate VBA6 source code into approximately equivalent JS.

By default, convert reads the file named on the command line and
writes the translated JS to standard output. If no path is given, it
reads from standard input.

Examples:
  # Translate a file to stdout
  vb2js convert module.bas

  # Translate inline code
  vb2js convert -e "Dim x As Integer"

  # Translate a file to disk
  vb2js convert -o module.js module.bas

  # Translate from stdin
  cat module.bas | vb2js convert`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "translate inline code instead of reading from a file")
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write result to this path instead of stdout")
}

func runConvert(cmd *cobra.Command, args []string) error {
	var input string
	var filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		filename = "<stdin>"
		content, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(content)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Translating: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Input length: %d bytes\n", len(input))
		fmt.Fprintln(os.Stderr, "---")
	}

	out, err := vbconv.ConvertText(input)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	if outputPath == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", outputPath, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	}
	return nil
}
