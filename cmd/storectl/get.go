package storectl

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
)

// GetCmd reads a descriptor's bytes and writes them to a local path.
var GetCmd = &cobra.Command{
	Use:   "get <id> <path>",
	Short: "read a descriptor's bytes to a file",
	Long:  "read a descriptor's bytes to a file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		content, err := store.Get(ctx, args[0])
		if err != nil {
			fatalf("get: %v", err)
		}
		if err := os.WriteFile(args[1], content, 0o644); err != nil {
			fatalf("write %s: %v", args[1], err)
		}
	},
}
