package storectl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/digest"
	"github.com/batchvault/batchvault/internal/dcontext"
	"github.com/batchvault/batchvault/store/objectstore"
)

// InitCmd creates a fresh store and immediately saves its (empty)
// manifest, printing the assigned uuid so it can be recorded in a
// config file's store.uuid field for subsequent commands.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "create a new store and print its uuid",
	Long:  "create a new store and print its uuid",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfiguration()
		if err != nil {
			fatalf("configuration error: %v", err)
		}
		ctx, err := configureLogging(dcontext.Background(), cfg)
		if err != nil {
			fatalf("logging configuration error: %v", err)
		}

		store, err := objectstore.Open(ctx, cfg.Store.Root, cfg.Store.Name, "", digest.Algorithm(cfg.Store.Algorithm), cfg.Store.AltRoot)
		if err != nil {
			fatalf("open: %v", err)
		}
		if err := store.SaveStore(ctx); err != nil {
			fatalf("save: %v", err)
		}

		fmt.Println(store.UUID())
	},
}
