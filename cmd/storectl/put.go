package storectl

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
)

// PutCmd writes a local file's bytes to an already-registered
// descriptor's address.
var PutCmd = &cobra.Command{
	Use:   "put <id> <path>",
	Short: "write a file's bytes to a registered descriptor",
	Long:  "write a file's bytes to a registered descriptor",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		content, err := os.ReadFile(args[1])
		if err != nil {
			fatalf("read %s: %v", args[1], err)
		}
		if err := store.Put(ctx, args[0], content); err != nil {
			fatalf("put: %v", err)
		}
	},
}
