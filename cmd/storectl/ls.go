package storectl

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
	"github.com/batchvault/batchvault/store/descriptor"
	storagedriver "github.com/batchvault/batchvault/store/driver"
)

var (
	lsPrefix  string
	lsSuffix  string
	lsBackend bool
)

func init() {
	LsCmd.Flags().StringVar(&lsPrefix, "prefix", "", "only list descriptors whose id or name starts with this prefix")
	LsCmd.Flags().StringVar(&lsSuffix, "suffix", "", "only list descriptors whose name ends with this suffix")
	LsCmd.Flags().BoolVar(&lsBackend, "backend", false, "walk the backend's raw keys instead of the catalog (--prefix/--suffix are ignored)")
}

// LsCmd lists the catalog, optionally filtered by id-or-name prefix and
// name suffix, matching objectstore.Store.List. With --backend it instead
// walks the backend's raw keys via objectstore.Store.WalkBackend, for
// spotting entries the catalog and the backend have drifted on.
var LsCmd = &cobra.Command{
	Use:   "ls",
	Short: "list descriptors in the catalog",
	Long:  "list descriptors in the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		if lsBackend {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "KEY\tSIZE\tDIR")
			err := store.WalkBackend(ctx, func(fi storagedriver.FileInfo) error {
				fmt.Fprintf(w, "%s\t%d\t%t\n", fi.Path(), fi.Size(), fi.IsDir())
				return nil
			})
			if err != nil {
				fatalf("walk backend: %v", err)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "UUID\tTAG\tNAME")
		for _, d := range store.List(lsPrefix, lsSuffix) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.UUID, descriptor.WhichInfo(d), d.Name)
		}
	},
}
