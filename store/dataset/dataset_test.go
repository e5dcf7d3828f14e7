package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/batchvault/batchvault/digest"
	"github.com/batchvault/batchvault/store/descriptor"
	"github.com/batchvault/batchvault/store/objectstore"
)

func TestBuildDatasetAndIngestFiles(t *testing.T) {
	ctx := context.Background()
	store, err := objectstore.Open(ctx, "memory://", "test", "", digest.SHA1, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	a := New(store)

	datasetID, err := a.BuildDataset(ctx,
		objectstore.BytesSource([]byte("menu")), descriptor.MenuInfo{},
		objectstore.BytesSource([]byte("config")), descriptor.ConfigInfo{},
	)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}

	if _, err := store.NewPartition(ctx, datasetID, "key"); err != nil {
		t.Fatalf("NewPartition: %v", err)
	}
	jobID, err := store.NewJob(ctx, datasetID)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"a.dat", "b.dat"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	descs, err := a.IngestFiles(ctx, datasetID, "key", dir, "*.dat", descriptor.FileInfo{Type: descriptor.FileTypeRaw}, jobID)
	if err != nil {
		t.Fatalf("IngestFiles: %v", err)
	}
	if len(descs) != 2 {
		t.Fatalf("IngestFiles returned %d descriptors, want 2", len(descs))
	}

	partitions, err := store.ListPartitions(datasetID)
	if err != nil {
		t.Fatalf("ListPartitions: %v", err)
	}
	if len(partitions) != 1 || partitions[0] != "key" {
		t.Fatalf("ListPartitions = %v, want [key]", partitions)
	}
}
