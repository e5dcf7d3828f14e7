package storectl

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/batchvault/batchvault/internal/dcontext"
	"github.com/batchvault/batchvault/store/dataset"
	"github.com/batchvault/batchvault/store/descriptor"
)

var ingestType string

func init() {
	IngestCmd.Flags().StringVar(&ingestType, "type", "raw", "file type: raw, arrow_file, or arrow_stream")
}

func parseFileType(s string) (descriptor.FileType, error) {
	switch s {
	case "raw":
		return descriptor.FileTypeRaw, nil
	case "arrow_file":
		return descriptor.FileTypeArrowFile, nil
	case "arrow_stream":
		return descriptor.FileTypeArrowStream, nil
	default:
		return 0, fmt.Errorf("unsupported --type %q, must be raw, arrow_file, or arrow_stream", s)
	}
}

// IngestCmd registers every file under dir matching glob into
// dataset-id's partition-key/job-id, mirroring
// dataset.Assembler.IngestFiles.
var IngestCmd = &cobra.Command{
	Use:   "ingest <dataset-id> <partition-key> <dir> <glob> <job-id>",
	Short: "register every file matching glob under dir into a dataset partition/job",
	Long:  "register every file matching glob under dir into a dataset partition/job",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		fileType, err := parseFileType(ingestType)
		if err != nil {
			fatalf("%v", err)
		}
		jobID, err := strconv.Atoi(args[4])
		if err != nil {
			fatalf("invalid job-id %q: %v", args[4], err)
		}

		ctx, store, err := openStore(dcontext.Background())
		if err != nil {
			fatalf("open: %v", err)
		}

		a := dataset.New(store)
		descs, err := a.IngestFiles(ctx, args[0], args[1], args[2], args[3], descriptor.FileInfo{Type: fileType}, jobID)
		if err != nil {
			fatalf("ingest: %v", err)
		}
		if err := store.SaveStore(ctx); err != nil {
			fatalf("save: %v", err)
		}

		for _, d := range descs {
			fmt.Println(d.UUID)
		}
	},
}
