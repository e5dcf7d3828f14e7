// Package objectstore composes the blob backend (store/driver), the
// digest service (digest), the descriptor model (store/descriptor), and
// the catalog (store/catalog) into the store the rest of this module is
// built around: content registration, get/put, typed reads, listing, and
// save/reload.
package objectstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/batchvault/batchvault/digest"
	"github.com/batchvault/batchvault/internal/dcontext"
	"github.com/batchvault/batchvault/internal/uuid"
	"github.com/batchvault/batchvault/store/catalog"
	"github.com/batchvault/batchvault/store/descriptor"
	storagedriver "github.com/batchvault/batchvault/store/driver"
	"github.com/batchvault/batchvault/store/driver/factory"

	// Blank-imported so their init() registers them with package factory.
	// objectstore itself never references filesystem/memory types
	// directly -- it only ever asks factory.Create for a URL scheme.
	_ "github.com/batchvault/batchvault/store/driver/filesystem"
	_ "github.com/batchvault/batchvault/store/driver/memory"
)

// Store is an open instance of the metadata-plus-content store: one
// StoreManifest's identity plus its live catalog and backend handles.
// A Store is not safe for concurrent mutation, matching catalog.Book's
// own contract; callers serialize calls against one instance themselves.
type Store struct {
	backend    storagedriver.StorageDriver
	altBackend storagedriver.StorageDriver
	hasher     digest.Hasher
	book       *catalog.Book

	uuid       string
	name       string
	address    string
	parentUUID string
	created    time.Time
	aux        map[string]string
	root       string
}

// BackendRoot returns the primary backend root URL this store was
// opened against (the root argument to Open), recorded on new
// datasets' DatasetInfo.StorageLocation.
func (s *Store) BackendRoot() string {
	return s.root
}

// Open creates or reopens a store. If storeUUID is empty, a fresh
// StoreManifest is created with a new uuid. Otherwise the manifest
// identified by storeUUID is fetched from root, parsed, and its catalog
// replayed; name must match the persisted name or NameMismatchError is
// returned. altRoot, if non-empty, is opened as the alternate backend
// that receives bulk file/table payloads.
func Open(ctx context.Context, root, name, storeUUID string, algorithm digest.Algorithm, altRoot string) (*Store, error) {
	ctx = dcontext.WithBackendRoot(ctx, root)

	backend, err := openBackend(ctx, root)
	if err != nil {
		return nil, err
	}

	var alt storagedriver.StorageDriver
	if altRoot != "" {
		alt, err = openBackend(ctx, altRoot)
		if err != nil {
			return nil, err
		}
	}

	if algorithm == "" {
		algorithm = digest.DefaultAlgorithm
	}

	if storeUUID == "" {
		return createStore(ctx, backend, alt, name, root, algorithm)
	}
	return reopenStore(ctx, backend, alt, name, root, storeUUID, algorithm)
}

func createStore(ctx context.Context, backend, alt storagedriver.StorageDriver, name, root string, algorithm digest.Algorithm) (*Store, error) {
	hasher, err := digest.NewHasher(algorithm)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	addr, err := backend.URLFor(ctx, backendKey(id), nil)
	if err != nil {
		return nil, IOError{Op: "url_for", ID: id, Err: err}
	}

	s := &Store{
		backend:    backend,
		altBackend: alt,
		hasher:     hasher,
		book:       catalog.New(),
		uuid:       id,
		name:       name,
		address:    addr,
		created:    time.Now(),
		root:       root,
	}

	dcontext.GetLogger(ctx).Infof("objectstore: created store %s (%s) at %s", id, name, dcontext.GetBackendRoot(ctx))
	return s, nil
}

func reopenStore(ctx context.Context, backend, alt storagedriver.StorageDriver, name, root, storeUUID string, algorithm digest.Algorithm) (*Store, error) {
	raw, err := backend.GetContent(ctx, backendKey(storeUUID))
	if err != nil {
		if _, ok := err.(storagedriver.PathNotFoundError); ok {
			return nil, NotFoundError{ID: storeUUID}
		}
		return nil, IOError{Op: "get", ID: storeUUID, Err: err}
	}

	var manifest descriptor.StoreManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, DecodeError{Err: err}
	}
	if manifest.Name != name {
		return nil, NameMismatchError{Got: name, Want: manifest.Name}
	}

	book := catalog.New()
	for _, d := range manifest.Objects {
		if err := book.Set(d.UUID, d); err != nil {
			return nil, translateCatalogErr(err)
		}
	}

	alg := algorithm
	if manifest.Algorithm != "" {
		alg = digest.Algorithm(manifest.Algorithm)
	}
	hasher, err := digest.NewHasher(alg)
	if err != nil {
		return nil, err
	}

	s := &Store{
		backend:    backend,
		altBackend: alt,
		hasher:     hasher,
		book:       book,
		uuid:       manifest.UUID,
		name:       manifest.Name,
		address:    manifest.Address,
		parentUUID: manifest.ParentUUID,
		created:    manifest.Created,
		aux:        manifest.Aux,
		root:       root,
	}

	dcontext.GetLogger(ctx).Infof("objectstore: reopened store %s (%s) from %s, %d objects", s.uuid, s.name, dcontext.GetBackendRoot(ctx), book.Len())
	return s, nil
}

// UUID returns the store's identifier.
func (s *Store) UUID() string { return s.uuid }

// Name returns the store's human-readable label.
func (s *Store) Name() string { return s.name }

// Algorithm returns the digest algorithm this store was opened with.
func (s *Store) Algorithm() digest.Algorithm { return s.hasher.Algorithm() }

// SaveStore serializes the manifest, including every descriptor
// currently in the catalog, and writes it to the primary backend under
// the store's uuid. It snapshots the current in-memory state; concurrent
// mutation during SaveStore is undefined.
func (s *Store) SaveStore(ctx context.Context) error {
	manifest := descriptor.StoreManifest{
		UUID:       s.uuid,
		Name:       s.name,
		Address:    s.address,
		ParentUUID: s.parentUUID,
		Algorithm:  string(s.hasher.Algorithm()),
		Created:    s.created,
		Aux:        s.aux,
		Objects:    s.book.List(),
	}

	raw, err := json.Marshal(manifest)
	if err != nil {
		return DecodeError{Err: err}
	}

	if err := s.backend.PutContent(ctx, backendKey(s.uuid), raw); err != nil {
		return IOError{Op: "save_store", ID: s.uuid, Err: err}
	}

	dcontext.GetLogger(ctx).Infof("objectstore: saved store %s (%d objects)", s.uuid, len(manifest.Objects))
	return nil
}

// backendFor picks the backend that should hold a descriptor's payload
// bytes: the alternate backend for bulk file/table content, if one is
// configured, the primary backend otherwise.
func (s *Store) backendFor(tag descriptor.InfoTag) storagedriver.StorageDriver {
	if s.altBackend != nil && (tag == descriptor.TagFile || tag == descriptor.TagTable) {
		return s.altBackend
	}
	return s.backend
}

// WalkBackend enumerates every key actually present in the primary
// backend, depth-first from root, independent of the in-memory
// catalog. It realizes the blob backend's optional iter_keys()
// operation via storagedriver.Walk, driving itself off List/Stat
// alone so it works against any StorageDriver -- useful for an
// operator spotting orphaned or missing backend keys the catalog
// doesn't know about.
func (s *Store) WalkBackend(ctx context.Context, fn storagedriver.WalkFn) error {
	return storagedriver.Walk(ctx, s.backend, "/", fn)
}

// backendKey maps a bare descriptor/store uuid to the key a
// storagedriver.StorageDriver accepts. PathRegexp requires every key to
// start with "/"; this module's keys are otherwise flat, so the id is
// simply anchored directly under root.
func backendKey(id string) string {
	return "/" + id
}

// openBackend resolves a backend URL ("hfs:///abs/root", "memory://") to
// a concrete driver.StorageDriver via the factory registry.
func openBackend(ctx context.Context, raw string) (storagedriver.StorageDriver, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("objectstore: invalid backend url %q: %w", raw, err)
	}

	params := map[string]interface{}{}
	switch u.Scheme {
	case "hfs":
		root := u.Path
		if u.Host != "" {
			root = u.Host + root
		}
		params["rootdirectory"] = root
	case "memory":
		params["name"] = u.Host
	}

	d, err := factory.Create(ctx, u.Scheme, params)
	if err != nil {
		return nil, fmt.Errorf("objectstore: %w", err)
	}
	return d, nil
}
