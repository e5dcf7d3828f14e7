package arrowfile

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/ipc"
	"github.com/apache/arrow/go/v15/arrow/memory"
)

func buildFile(t *testing.T, numBatches int) []byte {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "n", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

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
			t.Fatalf("Write record %d: %v", i, err)
		}
		rec.Release()
		arr.Release()
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close writer: %v", err)
	}
	return buf.Bytes()
}

func TestOpenFileReportsBatchCount(t *testing.T) {
	data := buildFile(t, 10)

	r, err := OpenFile(data)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	if got := r.NumRecordBatches(); got != 10 {
		t.Fatalf("NumRecordBatches = %d, want 10", got)
	}

	rec, err := r.Record(0)
	if err != nil {
		t.Fatalf("Record(0): %v", err)
	}
	if rec.NumCols() != 1 {
		t.Fatalf("NumCols = %d, want 1", rec.NumCols())
	}
}

func TestOpenRawHasZeroBatches(t *testing.T) {
	r := OpenRaw([]byte("not arrow data"))
	if r.NumRecordBatches() != 0 {
		t.Fatalf("NumRecordBatches = %d, want 0", r.NumRecordBatches())
	}
	data, ok := Bytes(r)
	if !ok || string(data) != "not arrow data" {
		t.Fatalf("Bytes round trip failed: %q, %v", data, ok)
	}
}
