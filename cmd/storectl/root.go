// Package storectl is the cobra command tree for the storectl binary,
// a thin operator/scripting surface over store/objectstore and
// store/dataset: RootCmd plus one subcommand per operation, since this
// library has no daemon mode. This package lives outside store/ and
// only calls its public API.
package storectl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/version"
)

var showVersion bool

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (see config.Configuration)")
	RootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")

	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(RegisterCmd)
	RootCmd.AddCommand(PutCmd)
	RootCmd.AddCommand(GetCmd)
	RootCmd.AddCommand(LsCmd)
	RootCmd.AddCommand(PartitionCmd)
	RootCmd.AddCommand(JobCmd)
	RootCmd.AddCommand(IngestCmd)
}

var configPath string

// RootCmd is the main command for the storectl binary.
var RootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "storectl operates a batchvault object store",
	Long:  "storectl operates a batchvault object store",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			version.PrintVersion()
			return
		}
		//nolint:errcheck
		cmd.Usage()
	},
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
