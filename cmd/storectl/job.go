package storectl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
)

// JobCmd appends a new job to a dataset and prints its 0-based index.
var JobCmd = &cobra.Command{
	Use:   "job <dataset-id>",
	Short: "append a new job to a dataset",
	Long:  "append a new job to a dataset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		idx, err := store.NewJob(ctx, args[0])
		if err != nil {
			fatalf("new job: %v", err)
		}
		if err := store.SaveStore(ctx); err != nil {
			fatalf("save: %v", err)
		}
		fmt.Println(idx)
	},
}
