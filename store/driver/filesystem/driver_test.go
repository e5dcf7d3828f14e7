package filesystem

import (
	"context"
	"os"
	"testing"

	storagedriver "github.com/batchvault/batchvault/store/driver"
)

func TestPutGetContent(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	d := New(DriverParameters{RootDirectory: root, MaxThreads: 25})

	if err := d.PutContent(ctx, "/blobs/abc", []byte("hello")); err != nil {
		t.Fatalf("PutContent: %v", err)
	}

	got, err := d.GetContent(ctx, "/blobs/abc")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("GetContent = %q, want %q", got, "hello")
	}
}

func TestGetContentNotFound(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	d := New(DriverParameters{RootDirectory: root, MaxThreads: 25})

	_, err := d.GetContent(ctx, "/nope")
	if _, ok := err.(storagedriver.PathNotFoundError); !ok {
		t.Fatalf("expected PathNotFoundError, got %v (%T)", err, err)
	}
}

func TestListAndMove(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	d := New(DriverParameters{RootDirectory: root, MaxThreads: 25})

	for _, k := range []string{"/dir/a", "/dir/b"} {
		if err := d.PutContent(ctx, k, []byte(k)); err != nil {
			t.Fatalf("PutContent(%s): %v", k, err)
		}
	}

	entries, err := d.List(ctx, "/dir")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}

	if err := d.Move(ctx, "/dir/a", "/dir/moved"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := d.GetContent(ctx, "/dir/moved"); err != nil {
		t.Fatalf("GetContent after move: %v", err)
	}
	if _, err := os.Stat(root + "/dir/a"); !os.IsNotExist(err) {
		t.Fatalf("expected source to be removed after move")
	}
}

func TestDelete(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	d := New(DriverParameters{RootDirectory: root, MaxThreads: 25})

	if err := d.PutContent(ctx, "/x", []byte("x")); err != nil {
		t.Fatalf("PutContent: %v", err)
	}
	if err := d.Delete(ctx, "/x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := d.GetContent(ctx, "/x"); err == nil {
		t.Fatalf("expected error reading deleted content")
	}
}
