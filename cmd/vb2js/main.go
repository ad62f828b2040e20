// Command vb2js translates VBA6 source code into approximately
// equivalent JavaScript.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/vba2js/cmd/vb2js/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
