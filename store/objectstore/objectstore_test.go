package objectstore

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/ipc"
	"github.com/apache/arrow/go/v15/arrow/memory"

	"github.com/batchvault/batchvault/digest"
	"github.com/batchvault/batchvault/store/descriptor"
	storagedriver "github.com/batchvault/batchvault/store/driver"
)

func buildArrowFile(t *testing.T, numBatches int) []byte {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{{Name: "n", Type: arrow.PrimitiveTypes.Int64}}, nil)

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithSchema(schema))
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	pool := memory.NewGoAllocator()
	for i := 0; i < numBatches; i++ {
		b := array.NewInt64Builder(pool)
		b.Append(int64(i))
		arr := b.NewInt64Array()
		rec := array.NewRecord(schema, []arrow.Array{arr}, 1)
		if err := w.Write(rec); err != nil {
			t.Fatalf("write record %d: %v", i, err)
		}
		rec.Release()
		arr.Release()
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf.Bytes()
}

// TestRoundTripMenu covers S1: create store, register a menu payload,
// put then get reproduces the same bytes.
func TestRoundTripMenu(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "memory://", "test", "", digest.SHA1, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	payload := []byte(`{"uuid":"1111","name":"M"}`)
	d, err := s.RegisterContent(ctx, BytesSource(payload), descriptor.MenuInfo{Created: time.Now()}, RegisterOptions{Name: "menu-1"})
	if err != nil {
		t.Fatalf("RegisterContent: %v", err)
	}

	hasher, _ := digest.NewHasher(digest.SHA1)
	want := hasher.Sum(payload)
	if d.UUID != want {
		t.Fatalf("id = %s, want sha1(%x) = %s", d.UUID, payload, want)
	}

	if err := s.Put(ctx, d.UUID, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, d.UUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Get = %q, want %q", got, payload)
	}
}

// TestDuplicateContentIsIdempotent covers P1/P2.
func TestDuplicateContentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://", "test", "", digest.SHA1, "")

	a, err := s.RegisterContent(ctx, BytesSource([]byte("hello")), descriptor.MenuInfo{}, RegisterOptions{})
	if err != nil {
		t.Fatalf("RegisterContent: %v", err)
	}
	b, err := s.RegisterContent(ctx, BytesSource([]byte("hello")), descriptor.MenuInfo{}, RegisterOptions{})
	if err != nil {
		t.Fatalf("RegisterContent second: %v", err)
	}
	if a.UUID != b.UUID {
		t.Fatalf("expected same id for identical content, got %s and %s", a.UUID, b.UUID)
	}
	if len(s.List("", "")) != 1 {
		t.Fatalf("expected exactly one catalog entry, got %d", len(s.List("", "")))
	}

	c, err := s.RegisterContent(ctx, BytesSource([]byte("world")), descriptor.MenuInfo{}, RegisterOptions{})
	if err != nil {
		t.Fatalf("RegisterContent third: %v", err)
	}
	if c.UUID == a.UUID {
		t.Fatalf("expected different content to yield a different id")
	}
}

// TestArrowFileWriteAndOpen covers S2: register a 10-batch arrow file,
// open(id) reports num_record_batches == 10.
func TestArrowFileWriteAndOpen(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://", "test", "", digest.SHA1, "")

	menu, _ := s.RegisterContent(ctx, BytesSource([]byte("menu")), descriptor.MenuInfo{}, RegisterOptions{})
	config, _ := s.RegisterContent(ctx, BytesSource([]byte("config")), descriptor.ConfigInfo{}, RegisterOptions{})
	ds, err := s.RegisterDataset(ctx, menu.UUID, config.UUID)
	if err != nil {
		t.Fatalf("RegisterDataset: %v", err)
	}
	if _, err := s.NewPartition(ctx, ds.UUID, "key"); err != nil {
		t.Fatalf("NewPartition: %v", err)
	}
	jobIdx, err := s.NewJob(ctx, ds.UUID)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	data := buildArrowFile(t, 10)
	fileDesc, err := s.RegisterContent(ctx, BytesSource(data), descriptor.FileInfo{Type: descriptor.FileTypeArrowFile}, RegisterOptions{
		DatasetID: ds.UUID, PartitionKey: "key", JobID: &jobIdx,
	})
	if err != nil {
		t.Fatalf("RegisterContent(file): %v", err)
	}
	if err := s.Put(ctx, fileDesc.UUID, data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	r, err := s.Open(ctx, fileDesc.UUID)
	if err != nil {
		t.Fatalf("Open(id): %v", err)
	}
	defer r.Close()
	if got := r.NumRecordBatches(); got != 10 {
		t.Fatalf("NumRecordBatches = %d, want 10", got)
	}
}

// TestDuplicateFileSuffixing covers P8/S3: two distinct paths with
// identical contents yield ids differing only by the "_n" suffix.
func TestDuplicateFileSuffixing(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://", "test", "", digest.SHA1, "")

	data := buildArrowFile(t, 10)
	dir := t.TempDir()
	path1 := dir + "/dummy.arrow"
	path2 := dir + "/dummy2.arrow"
	writeFile(t, path1, data)
	writeFile(t, path2, data)

	d1, err := s.RegisterContent(ctx, PathSource(path1), descriptor.FileInfo{Type: descriptor.FileTypeArrowFile}, RegisterOptions{Name: "dummy.arrow"})
	if err != nil {
		t.Fatalf("RegisterContent(path1): %v", err)
	}
	d2, err := s.RegisterContent(ctx, PathSource(path2), descriptor.FileInfo{Type: descriptor.FileTypeArrowFile}, RegisterOptions{Name: "dummy2.arrow"})
	if err != nil {
		t.Fatalf("RegisterContent(path2): %v", err)
	}

	if d2.UUID != d1.UUID+"_0" {
		t.Fatalf("d2.UUID = %s, want %s_0", d2.UUID, d1.UUID)
	}

	for _, d := range []descriptor.Descriptor{d1, d2} {
		r, err := s.Open(ctx, d.UUID)
		if err != nil {
			t.Fatalf("Open(%s): %v", d.UUID, err)
		}
		if r.NumRecordBatches() != 10 {
			t.Fatalf("NumRecordBatches(%s) = %d, want 10", d.UUID, r.NumRecordBatches())
		}
		r.Close()
	}
}

// TestMultiPartitionJobListing covers S4: three partitions, ten jobs
// each writing one file per partition; list_partitions preserves
// insertion order, list(prefix,suffix) finds all 30 files.
func TestMultiPartitionJobListing(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://", "test", "", digest.SHA1, "")

	menu, _ := s.RegisterContent(ctx, BytesSource([]byte("menu")), descriptor.MenuInfo{}, RegisterOptions{})
	config, _ := s.RegisterContent(ctx, BytesSource([]byte("config")), descriptor.ConfigInfo{}, RegisterOptions{})
	ds, _ := s.RegisterDataset(ctx, menu.UUID, config.UUID)

	keys := []string{"key1", "key2", "key3"}
	for _, k := range keys {
		if _, err := s.NewPartition(ctx, ds.UUID, k); err != nil {
			t.Fatalf("NewPartition(%s): %v", k, err)
		}
	}

	for job := 0; job < 10; job++ {
		jobIdx, err := s.NewJob(ctx, ds.UUID)
		if err != nil {
			t.Fatalf("NewJob: %v", err)
		}
		for _, k := range keys {
			content := []byte{byte(job), k[len(k)-1]}
			if _, err := s.RegisterContent(ctx, BytesSource(content), descriptor.FileInfo{Type: descriptor.FileTypeArrowFile}, RegisterOptions{
				DatasetID: ds.UUID, PartitionKey: k, JobID: &jobIdx,
			}); err != nil {
				t.Fatalf("RegisterContent job=%d key=%s: %v", job, k, err)
			}
		}
	}

	got, err := s.ListPartitions(ds.UUID)
	if err != nil {
		t.Fatalf("ListPartitions: %v", err)
	}
	if len(got) != 3 || got[0] != "key1" || got[1] != "key2" || got[2] != "key3" {
		t.Fatalf("ListPartitions = %v, want [key1 key2 key3]", got)
	}

	matches := s.List(ds.UUID, "arrow")
	if len(matches) != 30 {
		t.Fatalf("List(prefix,suffix) returned %d entries, want 30", len(matches))
	}
}

// TestReopenReconstructsCatalog covers P3/P4/S5.
func TestReopenReconstructsCatalog(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://store-root/", "test", "", digest.SHA1, "")

	menu, _ := s.RegisterContent(ctx, BytesSource([]byte("menu")), descriptor.MenuInfo{}, RegisterOptions{})
	_ = s.Put(ctx, menu.UUID, []byte("menu"))
	config, _ := s.RegisterContent(ctx, BytesSource([]byte("config")), descriptor.ConfigInfo{}, RegisterOptions{})
	_ = s.Put(ctx, config.UUID, []byte("config"))
	ds, _ := s.RegisterDataset(ctx, menu.UUID, config.UUID)
	if _, err := s.NewPartition(ctx, ds.UUID, "key"); err != nil {
		t.Fatalf("NewPartition: %v", err)
	}

	if err := s.SaveStore(ctx); err != nil {
		t.Fatalf("SaveStore: %v", err)
	}
	before := s.List("", "")

	reopened, err := Open(ctx, "memory://store-root/", "test", s.uuid, digest.SHA1, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	after := reopened.List("", "")

	if len(before) != len(after) {
		t.Fatalf("catalog size changed across reopen: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i].UUID != after[i].UUID {
			t.Fatalf("order mismatch at %d: %s vs %s", i, before[i].UUID, after[i].UUID)
		}
	}

	if _, err := reopened.Get(ctx, menu.UUID); err != nil {
		t.Fatalf("Get(menu) after reopen: %v", err)
	}
	if _, err := reopened.Get(ctx, config.UUID); err != nil {
		t.Fatalf("Get(config) after reopen: %v", err)
	}
}

func TestNameMismatchOnReopen(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://mismatch-root/", "test", "", digest.SHA1, "")
	_, _ = s.RegisterContent(ctx, BytesSource([]byte("m")), descriptor.MenuInfo{}, RegisterOptions{})
	if err := s.SaveStore(ctx); err != nil {
		t.Fatalf("SaveStore: %v", err)
	}

	_, err := Open(ctx, "memory://mismatch-root/", "other", s.uuid, digest.SHA1, "")
	if _, ok := err.(NameMismatchError); !ok {
		t.Fatalf("expected NameMismatchError, got %v", err)
	}
}

// TestWalkBackendFindsWrittenKeys covers iter_keys(): after two Puts,
// walking the backend from root visits both backend keys, independent
// of the catalog.
func TestWalkBackendFindsWrittenKeys(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, "memory://walk-test/", "test", "", digest.SHA1, "")

	a, err := s.RegisterContent(ctx, BytesSource([]byte("hello")), descriptor.MenuInfo{}, RegisterOptions{})
	if err != nil {
		t.Fatalf("RegisterContent: %v", err)
	}
	if err := s.Put(ctx, a.UUID, []byte("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	b, err := s.RegisterContent(ctx, BytesSource([]byte("world")), descriptor.MenuInfo{}, RegisterOptions{})
	if err != nil {
		t.Fatalf("RegisterContent: %v", err)
	}
	if err := s.Put(ctx, b.UUID, []byte("world")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	seen := map[string]bool{}
	err = s.WalkBackend(ctx, func(fi storagedriver.FileInfo) error {
		seen[fi.Path()] = true
		return nil
	})
	if err != nil {
		t.Fatalf("WalkBackend: %v", err)
	}

	for _, id := range []string{a.UUID, b.UUID} {
		if !seen[backendKey(id)] {
			t.Fatalf("WalkBackend did not visit %s (saw %v)", backendKey(id), seen)
		}
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
