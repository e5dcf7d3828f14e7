// Package dataset is a thin façade over objectstore.Store grouping the
// common multi-step sequences: building a dataset out of a menu and a
// configuration, and ingesting a batch of files that match a glob into
// one partition/job -- composing several Store calls into one named
// operation.
package dataset

import (
	"context"

	"github.com/batchvault/batchvault/store/descriptor"
	"github.com/batchvault/batchvault/store/objectstore"
)

// Assembler wraps an open objectstore.Store with the higher-level
// dataset-building operations.
type Assembler struct {
	store *objectstore.Store
}

// New wraps an already-open store.
func New(store *objectstore.Store) *Assembler {
	return &Assembler{store: store}
}

// BuildDataset registers menu and config as MenuInfo/ConfigInfo content,
// then binds them into a new dataset. It returns the dataset's uuid.
func (a *Assembler) BuildDataset(ctx context.Context, menu objectstore.Source, menuInfo descriptor.MenuInfo, config objectstore.Source, configInfo descriptor.ConfigInfo) (string, error) {
	menuDesc, err := a.store.RegisterContent(ctx, menu, menuInfo, objectstore.RegisterOptions{})
	if err != nil {
		return "", err
	}

	configDesc, err := a.store.RegisterContent(ctx, config, configInfo, objectstore.RegisterOptions{})
	if err != nil {
		return "", err
	}

	ds, err := a.store.RegisterDataset(ctx, menuDesc.UUID, configDesc.UUID)
	if err != nil {
		return "", err
	}
	return ds.UUID, nil
}

// IngestFiles registers every file under dir matching pathGlob as a
// FileInfo-tagged descriptor, linked into datasetID's partitionKey and
// jobID.
func (a *Assembler) IngestFiles(ctx context.Context, datasetID, partitionKey, dir, pathGlob string, fileInfo descriptor.FileInfo, jobID int) ([]descriptor.Descriptor, error) {
	opts := objectstore.RegisterOptions{
		DatasetID:    datasetID,
		PartitionKey: partitionKey,
		JobID:        &jobID,
	}
	return a.store.RegisterGlob(ctx, dir, pathGlob, fileInfo, opts)
}
