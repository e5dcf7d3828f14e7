package objectstore

import (
	"context"
	"os"

	"github.com/batchvault/batchvault/store/arrowfile"
	"github.com/batchvault/batchvault/store/descriptor"
	storagedriver "github.com/batchvault/batchvault/store/driver"
)

// Put writes payload to the backend at id's descriptor address. id must
// already be registered via RegisterContent; Put only ever fills in
// bytes for an existing catalog entry, it never creates one, so a
// descriptor can be catalogued before its bytes are written.
func (s *Store) Put(ctx context.Context, id string, payload []byte) error {
	d, err := s.book.Get(id)
	if err != nil {
		return NotFoundError{ID: id}
	}

	if path, ok := fileURLPath(d.Address); ok {
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return IOError{Op: "put", ID: id, Err: err}
		}
		return nil
	}

	backend := s.backendFor(descriptor.WhichInfo(d))
	if err := backend.PutContent(ctx, backendKey(id), payload); err != nil {
		return IOError{Op: "put", ID: id, Err: err}
	}
	return nil
}

// Get reads the bytes registered under id, from the backend or, for
// file-referenced descriptors, from the external path directly.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	d, err := s.book.Get(id)
	if err != nil {
		return nil, NotFoundError{ID: id}
	}

	if path, ok := fileURLPath(d.Address); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, IOError{Op: "get", ID: id, Err: err}
		}
		return b, nil
	}

	backend := s.backendFor(descriptor.WhichInfo(d))
	b, err := backend.GetContent(ctx, backendKey(id))
	if err != nil {
		if _, ok := err.(storagedriver.PathNotFoundError); ok {
			return nil, NotFoundError{ID: id}
		}
		return nil, IOError{Op: "get", ID: id, Err: err}
	}
	return b, nil
}

// Open returns a typed reader for id: an Arrow file reader for
// arrow_file descriptors, an Arrow stream reader for arrow_stream
// descriptors, and a raw byte reader for everything else.
func (s *Store) Open(ctx context.Context, id string) (arrowfile.Reader, error) {
	d, err := s.book.Get(id)
	if err != nil {
		return nil, NotFoundError{ID: id}
	}

	data, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fi, ok := d.Info.(descriptor.FileInfo)
	if !ok {
		return arrowfile.OpenRaw(data), nil
	}

	switch fi.Type {
	case descriptor.FileTypeArrowFile:
		r, err := arrowfile.OpenFile(data)
		if err != nil {
			return nil, IOError{Op: "open", ID: id, Err: err}
		}
		return r, nil
	case descriptor.FileTypeArrowStream:
		r, err := arrowfile.OpenStream(data)
		if err != nil {
			return nil, IOError{Op: "open", ID: id, Err: err}
		}
		return r, nil
	default:
		return arrowfile.OpenRaw(data), nil
	}
}
