package storectl

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
	"github.com/batchvault/batchvault/store/descriptor"
	"github.com/batchvault/batchvault/store/objectstore"
)

var registerTag string

func init() {
	RegisterCmd.Flags().StringVar(&registerTag, "tag", "", "descriptor tag: menu or config")
	//nolint:errcheck
	RegisterCmd.MarkFlagRequired("tag")
}

// RegisterCmd registers a single file's bytes as a MenuInfo or
// ConfigInfo descriptor and prints the resulting id. File-tagged
// registration goes through IngestCmd, which supplies the dataset/
// partition/job context; partitions are created by PartitionCmd and
// jobs by JobCmd. No subcommand registers a dataset.
var RegisterCmd = &cobra.Command{
	Use:   "register <path>",
	Short: "register a file's bytes as a menu or config descriptor",
	Long:  "register a file's bytes as a menu or config descriptor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		var info descriptor.Info
		switch registerTag {
		case "menu":
			info = descriptor.MenuInfo{Created: time.Now()}
		case "config":
			info = descriptor.ConfigInfo{Created: time.Now()}
		default:
			fatalf("unsupported --tag %q, must be menu or config", registerTag)
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("read %s: %v", args[0], err)
		}

		d, err := store.RegisterContent(ctx, objectstore.BytesSource(content), info, objectstore.RegisterOptions{})
		if err != nil {
			fatalf("register: %v", err)
		}
		if err := store.Put(ctx, d.UUID, content); err != nil {
			fatalf("put: %v", err)
		}
		if err := store.SaveStore(ctx); err != nil {
			fatalf("save: %v", err)
		}

		fmt.Println(d.UUID)
	},
}
