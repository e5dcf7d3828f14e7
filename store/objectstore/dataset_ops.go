package objectstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/batchvault/batchvault/internal/uuid"
	"github.com/batchvault/batchvault/store/descriptor"
)

// RegisterDataset validates that menuID and configID name existing
// MenuInfo/ConfigInfo descriptors in this store and creates a new
// DatasetInfo entry binding them.
func (s *Store) RegisterDataset(ctx context.Context, menuID, configID string) (descriptor.Descriptor, error) {
	menuDesc, err := s.book.Get(menuID)
	if err != nil {
		return descriptor.Descriptor{}, NotFoundError{ID: menuID}
	}
	if descriptor.WhichInfo(menuDesc) != descriptor.TagMenu {
		return descriptor.Descriptor{}, InvalidInfoError{Reason: fmt.Sprintf("%s is not a menu descriptor", menuID)}
	}

	configDesc, err := s.book.Get(configID)
	if err != nil {
		return descriptor.Descriptor{}, NotFoundError{ID: configID}
	}
	if descriptor.WhichInfo(configDesc) != descriptor.TagConfig {
		return descriptor.Descriptor{}, InvalidInfoError{Reason: fmt.Sprintf("%s is not a config descriptor", configID)}
	}

	id := uuid.NewString()
	addr, err := s.backend.URLFor(ctx, backendKey(id), nil)
	if err != nil {
		return descriptor.Descriptor{}, IOError{Op: "url_for", ID: id, Err: err}
	}

	d := descriptor.Descriptor{
		UUID:       id,
		Name:       fmt.Sprintf("dataset-%s", id),
		ParentUUID: s.uuid,
		Address:    addr,
		Info: descriptor.DatasetInfo{
			MenuID:          menuID,
			ConfigID:        configID,
			Partitions:      map[string]string{},
			StorageLocation: s.root,
		},
	}
	if err := s.book.Set(id, d); err != nil {
		return descriptor.Descriptor{}, translateCatalogErr(err)
	}
	return d, nil
}

// NewPartition appends a new, empty PartitionInfo named key to
// datasetID. key must be non-empty and free of the glob metacharacters
// Book.Glob interprets, and must not already exist in the dataset.
func (s *Store) NewPartition(ctx context.Context, datasetID, key string) (descriptor.Descriptor, error) {
	if key == "" || strings.ContainsAny(key, "*?[") {
		return descriptor.Descriptor{}, InvalidInfoError{Reason: "partition key must be non-empty and free of glob characters"}
	}

	dsDesc, err := s.book.Get(datasetID)
	if err != nil {
		return descriptor.Descriptor{}, NotFoundError{ID: datasetID}
	}
	ds, ok := dsDesc.Info.(descriptor.DatasetInfo)
	if !ok {
		return descriptor.Descriptor{}, InvalidInfoError{Reason: fmt.Sprintf("%s is not a dataset descriptor", datasetID)}
	}
	if _, exists := ds.Partitions[key]; exists {
		return descriptor.Descriptor{}, ConflictError{ID: key}
	}

	partID := uuid.NewString()
	addr, err := s.backend.URLFor(ctx, backendKey(partID), nil)
	if err != nil {
		return descriptor.Descriptor{}, IOError{Op: "url_for", ID: partID, Err: err}
	}

	partDesc := descriptor.Descriptor{
		UUID:       partID,
		Name:       fmt.Sprintf("%s.part_%s", datasetID, key),
		ParentUUID: s.uuid,
		Address:    addr,
		Info:       descriptor.PartitionInfo{Key: key},
	}
	if err := s.book.Set(partID, partDesc); err != nil {
		return descriptor.Descriptor{}, translateCatalogErr(err)
	}

	if ds.Partitions == nil {
		ds.Partitions = map[string]string{}
	}
	ds.Partitions[key] = partID
	ds.PartitionOrder = append(ds.PartitionOrder, key)
	dsDesc.Info = ds
	if err := s.book.Replace(datasetID, dsDesc); err != nil {
		return descriptor.Descriptor{}, translateCatalogErr(err)
	}

	return partDesc, nil
}

// NewJob appends a new JobInfo to datasetID and returns its 0-based
// ordinal. Jobs are append-only.
func (s *Store) NewJob(ctx context.Context, datasetID string) (int, error) {
	dsDesc, err := s.book.Get(datasetID)
	if err != nil {
		return 0, NotFoundError{ID: datasetID}
	}
	ds, ok := dsDesc.Info.(descriptor.DatasetInfo)
	if !ok {
		return 0, InvalidInfoError{Reason: fmt.Sprintf("%s is not a dataset descriptor", datasetID)}
	}

	idx := len(ds.Jobs)
	jobID := uuid.NewString()
	addr, err := s.backend.URLFor(ctx, backendKey(jobID), nil)
	if err != nil {
		return 0, IOError{Op: "url_for", ID: jobID, Err: err}
	}

	jobDesc := descriptor.Descriptor{
		UUID:       jobID,
		Name:       fmt.Sprintf("%s.job_%d", datasetID, idx),
		ParentUUID: s.uuid,
		Address:    addr,
		Info:       descriptor.JobInfo{Created: time.Now()},
	}
	if err := s.book.Set(jobID, jobDesc); err != nil {
		return 0, translateCatalogErr(err)
	}

	ds.Jobs = append(ds.Jobs, jobID)
	dsDesc.Info = ds
	if err := s.book.Replace(datasetID, dsDesc); err != nil {
		return 0, translateCatalogErr(err)
	}

	return idx, nil
}

// List scans the catalog, keeping descriptors whose id or name starts
// with prefix (when non-empty) and whose name ends with suffix (when
// non-empty). Matching the name lets a dataset uuid select the
// partition files named "<dataset_uuid>.part_<key>.<job>.<ext>".
func (s *Store) List(prefix, suffix string) []descriptor.Descriptor {
	var out []descriptor.Descriptor
	for _, d := range s.book.List() {
		if prefix != "" && !strings.HasPrefix(d.UUID, prefix) && !strings.HasPrefix(d.Name, prefix) {
			continue
		}
		if suffix != "" && !strings.HasSuffix(d.Name, suffix) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ListPartitions returns datasetID's partition keys in insertion order.
func (s *Store) ListPartitions(datasetID string) ([]string, error) {
	dsDesc, err := s.book.Get(datasetID)
	if err != nil {
		return nil, NotFoundError{ID: datasetID}
	}
	ds, ok := dsDesc.Info.(descriptor.DatasetInfo)
	if !ok {
		return nil, InvalidInfoError{Reason: fmt.Sprintf("%s is not a dataset descriptor", datasetID)}
	}

	out := make([]string, len(ds.PartitionOrder))
	copy(out, ds.PartitionOrder)
	return out, nil
}
