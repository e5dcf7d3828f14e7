// Package arrowfile wraps the Apache Arrow IPC readers behind the typed
// reader the object store hands back from Open(id) for file-variant
// descriptors (FileInfo.Type == arrow_file or arrow_stream), using the
// real ecosystem library for record-batch file/stream framing rather
// than reimplementing it by hand.
package arrowfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/ipc"
)

// Reader is the typed reader returned by objectstore's Open(id) for a
// file-variant descriptor. Raw (non-Arrow) descriptors get a Reader whose
// NumRecordBatches is always 0.
type Reader interface {
	io.Closer

	// NumRecordBatches returns the number of record batches the payload
	// contains. 0 for raw, non-Arrow payloads.
	NumRecordBatches() int

	// Record returns the i'th record batch, 0-indexed.
	Record(i int) (arrow.Record, error)
}

// OpenFile wraps an Arrow IPC file (random-access) payload already read
// into memory.
func OpenFile(data []byte) (Reader, error) {
	fr, err := ipc.NewFileReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("arrowfile: open file reader: %w", err)
	}
	return &fileReader{fr: fr}, nil
}

// OpenStream wraps an Arrow IPC streaming payload already read into
// memory. The stream is fully consumed up front so NumRecordBatches and
// Record behave the same as for a file reader.
func OpenStream(data []byte) (Reader, error) {
	sr, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("arrowfile: open stream reader: %w", err)
	}
	defer sr.Release()

	var records []arrow.Record
	for sr.Next() {
		rec := sr.Record()
		rec.Retain()
		records = append(records, rec)
	}
	if err := sr.Err(); err != nil && err != io.EOF {
		for _, rec := range records {
			rec.Release()
		}
		return nil, fmt.Errorf("arrowfile: read stream: %w", err)
	}

	return &streamReader{records: records}, nil
}

// OpenRaw wraps a non-Arrow payload, satisfying Reader with zero record
// batches, for descriptor types with no Arrow encoding.
func OpenRaw(data []byte) Reader {
	return rawReader{data: data}
}

type fileReader struct {
	fr *ipc.FileReader
}

func (f *fileReader) NumRecordBatches() int { return f.fr.NumRecords() }

func (f *fileReader) Record(i int) (arrow.Record, error) {
	return f.fr.Record(i)
}

func (f *fileReader) Close() error { return f.fr.Close() }

type streamReader struct {
	records []arrow.Record
}

func (s *streamReader) NumRecordBatches() int { return len(s.records) }

func (s *streamReader) Record(i int) (arrow.Record, error) {
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("arrowfile: record index %d out of range (%d batches)", i, len(s.records))
	}
	return s.records[i], nil
}

func (s *streamReader) Close() error {
	for _, rec := range s.records {
		rec.Release()
	}
	return nil
}

type rawReader struct {
	data []byte
}

func (r rawReader) NumRecordBatches() int { return 0 }

func (r rawReader) Record(i int) (arrow.Record, error) {
	return nil, fmt.Errorf("arrowfile: raw payload has no record batches")
}

func (r rawReader) Close() error { return nil }

// Bytes returns the raw bytes behind a rawReader, for callers that want
// the untyped payload rather than a batch-oriented view.
func Bytes(r Reader) ([]byte, bool) {
	rr, ok := r.(rawReader)
	if !ok {
		return nil, false
	}
	return rr.data, true
}
