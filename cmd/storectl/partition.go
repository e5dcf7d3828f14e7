package storectl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
)

// PartitionCmd creates a new, empty partition in a dataset.
var PartitionCmd = &cobra.Command{
	Use:   "partition <dataset-id> <key>",
	Short: "create a new partition in a dataset",
	Long:  "create a new partition in a dataset",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		if _, err := store.NewPartition(ctx, args[0], args[1]); err != nil {
			fatalf("new partition: %v", err)
		}
		if err := store.SaveStore(ctx); err != nil {
			fatalf("save: %v", err)
		}
		fmt.Println(args[1])
	},
}
