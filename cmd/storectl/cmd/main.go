// Command storectl is the CLI entrypoint; it just runs the command
// tree defined in package storectl.
package main

import (
	"fmt"
	"os"

	"github.com/batchvault/batchvault/cmd/storectl"
)

func main() {
	if err := storectl.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
