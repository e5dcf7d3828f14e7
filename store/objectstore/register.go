package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/batchvault/batchvault/store/descriptor"
)

// Source selects which of register_content's three input forms a call
// is using: a byte buffer, a filesystem path, or (via RegisterGlob) a
// directory of paths matched by a glob.
type Source interface {
	isSource()
}

// BytesSource registers a payload already held in memory. The same
// content registered twice returns the same id without appending a
// duplicate descriptor (P2).
type BytesSource []byte

func (BytesSource) isSource() {}

// PathSource registers a file external to the backend by path. Two
// distinct paths with identical contents collide on digest and are
// disambiguated with the "_n" suffix (P8); the same path registered
// twice is idempotent.
type PathSource string

func (PathSource) isSource() {}

// RegisterOptions carries the contextual ids register_content uses to
// link a new descriptor into its owning dataset, plus an optional name
// override.
type RegisterOptions struct {
	DatasetID    string
	PartitionKey string
	JobID        *int
	Name         string
}

// RegisterContent registers one payload -- a byte buffer or a file path
// -- under the given typed Info, optionally linking it into a dataset's
// partition, hists, or logs lists.
func (s *Store) RegisterContent(ctx context.Context, src Source, info descriptor.Info, opts RegisterOptions) (descriptor.Descriptor, error) {
	switch v := src.(type) {
	case BytesSource:
		return s.registerBytes(ctx, []byte(v), info, opts)
	case PathSource:
		return s.registerPath(ctx, string(v), info, opts)
	default:
		return descriptor.Descriptor{}, InvalidInfoError{Reason: "register_content: unsupported source type"}
	}
}

// RegisterGlob registers every file under dir matching glob, in the
// lexical order filepath.Glob returns them, each per the PathSource
// rules.
func (s *Store) RegisterGlob(ctx context.Context, dir, glob string, info descriptor.Info, opts RegisterOptions) ([]descriptor.Descriptor, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("objectstore: register_glob: %w", err)
	}

	out := make([]descriptor.Descriptor, 0, len(matches))
	for _, m := range matches {
		d, err := s.registerPath(ctx, m, info, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) registerBytes(ctx context.Context, content []byte, info descriptor.Info, opts RegisterOptions) (descriptor.Descriptor, error) {
	id := s.hasher.Sum(content)

	if existing, err := s.book.Get(id); err == nil {
		return existing, nil
	}

	backend := s.backendFor(descriptor.WhichInfo(descriptor.Descriptor{Info: info}))
	addr, err := backend.URLFor(ctx, backendKey(id), nil)
	if err != nil {
		return descriptor.Descriptor{}, IOError{Op: "url_for", ID: id, Err: err}
	}

	name := opts.Name
	if name == "" {
		name = s.buildName(opts, info)
	}

	d := descriptor.Descriptor{UUID: id, Name: name, ParentUUID: s.uuid, Address: addr, Info: info}
	if err := s.book.Set(id, d); err != nil {
		return descriptor.Descriptor{}, translateCatalogErr(err)
	}
	if err := s.linkContext(d, opts); err != nil {
		return descriptor.Descriptor{}, err
	}
	return d, nil
}

func (s *Store) registerPath(ctx context.Context, path string, info descriptor.Info, opts RegisterOptions) (descriptor.Descriptor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return descriptor.Descriptor{}, IOError{Op: "register_content", ID: path, Err: err}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return descriptor.Descriptor{}, fmt.Errorf("objectstore: resolve path %q: %w", path, err)
	}
	addr := (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String()

	id := s.hasher.Sum(content)
	finalID := id

	if existing, err := s.book.Get(id); err == nil {
		if existing.Address == addr {
			return existing, nil
		}
		finalID = ""
		for n := 0; ; n++ {
			cand := fmt.Sprintf("%s_%d", id, n)
			cur, err := s.book.Get(cand)
			if err != nil {
				finalID = cand
				break
			}
			if cur.Address == addr {
				return cur, nil
			}
		}
	}

	name := opts.Name
	if name == "" {
		name = s.buildName(opts, info)
	}

	d := descriptor.Descriptor{UUID: finalID, Name: name, ParentUUID: s.uuid, Address: addr, Info: info}
	if err := s.book.Set(finalID, d); err != nil {
		return descriptor.Descriptor{}, translateCatalogErr(err)
	}
	if err := s.linkContext(d, opts); err != nil {
		return descriptor.Descriptor{}, err
	}
	return d, nil
}

// buildName constructs the deterministic display name
// "<dataset_uuid>.part_<key>.<job_index>.<ext>" for partition-scoped
// content. Other info variants get no constructed name; callers are
// expected to supply opts.Name for those.
func (s *Store) buildName(opts RegisterOptions, info descriptor.Info) string {
	jobIdx := 0
	if opts.JobID != nil {
		jobIdx = *opts.JobID
	}

	switch v := info.(type) {
	case descriptor.FileInfo:
		return fmt.Sprintf("%s.part_%s.%d.%s", opts.DatasetID, opts.PartitionKey, jobIdx, v.Type.Ext())
	case descriptor.TableInfo:
		return fmt.Sprintf("%s.part_%s.%d.dat", opts.DatasetID, opts.PartitionKey, jobIdx)
	default:
		return ""
	}
}

// linkContext threads a newly registered descriptor into its owning
// dataset's DatasetInfo/PartitionInfo lists, when opts names a dataset.
func (s *Store) linkContext(d descriptor.Descriptor, opts RegisterOptions) error {
	if opts.DatasetID == "" {
		return nil
	}

	dsDesc, err := s.book.Get(opts.DatasetID)
	if err != nil {
		return NotFoundError{ID: opts.DatasetID}
	}
	ds, ok := dsDesc.Info.(descriptor.DatasetInfo)
	if !ok {
		return InvalidInfoError{Reason: "register_content: parent_uuid does not name a dataset"}
	}

	switch descriptor.WhichInfo(d) {
	case descriptor.TagFile, descriptor.TagTable:
		if opts.PartitionKey == "" {
			return MissingContextError{Reason: "file/table registration requires a partition_key"}
		}
		partID, ok := ds.Partitions[opts.PartitionKey]
		if !ok {
			return NotFoundError{ID: opts.PartitionKey}
		}
		partDesc, err := s.book.Get(partID)
		if err != nil {
			return translateCatalogErr(err)
		}
		pi := partDesc.Info.(descriptor.PartitionInfo)
		if descriptor.WhichInfo(d) == descriptor.TagFile {
			pi.Files = append(pi.Files, d.UUID)
		} else {
			pi.Tables = append(pi.Tables, d.UUID)
		}
		partDesc.Info = pi
		return s.book.Replace(partID, partDesc)

	case descriptor.TagHists:
		ds.Hists = append(ds.Hists, d.UUID)
		dsDesc.Info = ds
		return s.book.Replace(opts.DatasetID, dsDesc)

	case descriptor.TagLog:
		ds.Logs = append(ds.Logs, d.UUID)
		dsDesc.Info = ds
		return s.book.Replace(opts.DatasetID, dsDesc)

	default:
		return nil
	}
}

// fileURLPath decodes a "file://..." address back to a filesystem path,
// reporting false for any other address form.
func fileURLPath(addr string) (string, bool) {
	if !strings.HasPrefix(addr, "file://") {
		return "", false
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
