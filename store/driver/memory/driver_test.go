package memory

import (
	"context"
	"testing"
)

func TestPutGetContent(t *testing.T) {
	ctx := context.Background()
	d := New()

	if err := d.PutContent(ctx, "/a/b", []byte("payload")); err != nil {
		t.Fatalf("PutContent: %v", err)
	}

	got, err := d.GetContent(ctx, "/a/b")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("GetContent = %q, want %q", got, "payload")
	}
}

func TestListDirectChildren(t *testing.T) {
	ctx := context.Background()
	d := New()

	for _, k := range []string{"/ds/part_a/1", "/ds/part_b/1", "/ds/part_a/2"} {
		if err := d.PutContent(ctx, k, []byte("x")); err != nil {
			t.Fatalf("PutContent(%s): %v", k, err)
		}
	}

	children, err := d.List(ctx, "/ds")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("List(/ds) = %v, want 2 entries", children)
	}
}

func TestWriterCommit(t *testing.T) {
	ctx := context.Background()
	d := New()

	w, err := d.Writer(ctx, "/streamed", false)
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := d.GetContent(ctx, "/streamed")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("GetContent = %q, want %q", got, "hello world")
	}
}
