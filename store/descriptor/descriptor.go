// Package descriptor defines the tagged-union wire model persisted by the
// object store: a StoreManifest enumerating Descriptor entries, each
// carrying exactly one typed Info payload. Encoding is JSON: a
// discriminator field selects the variant, a registered decoder parses
// it, and a digest of the encoded bytes stands in for content identity.
package descriptor

import (
	"encoding/json"
	"fmt"
	"time"
)

// InfoTag identifies which typed payload a Descriptor carries, driving
// the "which_info" dispatch used to pick a decoder.
type InfoTag string

const (
	TagUnknown   InfoTag = ""
	TagMenu      InfoTag = "menu"
	TagConfig    InfoTag = "config"
	TagDataset   InfoTag = "dataset"
	TagPartition InfoTag = "partition"
	TagFile      InfoTag = "file"
	TagTable     InfoTag = "table"
	TagHists     InfoTag = "hists"
	TagLog       InfoTag = "log"
	TagJob       InfoTag = "job"
)

// Info is implemented by every typed payload a Descriptor can carry.
type Info interface {
	infoTag() InfoTag
}

// MenuInfo describes a registered menu blob.
type MenuInfo struct {
	Created time.Time         `json:"created"`
	Aux     map[string]string `json:"aux,omitempty"`
}

func (MenuInfo) infoTag() InfoTag { return TagMenu }

// ConfigInfo describes a registered configuration blob.
type ConfigInfo struct {
	Created time.Time         `json:"created"`
	Aux     map[string]string `json:"aux,omitempty"`
}

func (ConfigInfo) infoTag() InfoTag { return TagConfig }

// TableInfo describes a registered table blob.
type TableInfo struct {
	Created time.Time         `json:"created"`
	Aux     map[string]string `json:"aux,omitempty"`
}

func (TableInfo) infoTag() InfoTag { return TagTable }

// HistsInfo describes a registered histogram collection blob.
type HistsInfo struct {
	Created time.Time         `json:"created"`
	Aux     map[string]string `json:"aux,omitempty"`
}

func (HistsInfo) infoTag() InfoTag { return TagHists }

// LogInfo describes a registered log blob.
type LogInfo struct {
	Created time.Time         `json:"created"`
	Aux     map[string]string `json:"aux,omitempty"`
}

func (LogInfo) infoTag() InfoTag { return TagLog }

// JobInfo describes one append-only job run within a dataset.
type JobInfo struct {
	Created time.Time         `json:"created"`
	Aux     map[string]string `json:"aux,omitempty"`
}

func (JobInfo) infoTag() InfoTag { return TagJob }

// FileType distinguishes the payload format behind a FileInfo
// descriptor. 0 is raw bytes; 5 and 6 are the two Arrow encodings; the
// rest are reserved.
type FileType int

const (
	FileTypeRaw         FileType = 0
	FileTypeArrowFile   FileType = 5
	FileTypeArrowStream FileType = 6
)

// Ext returns the display extension used in descriptor names for this
// file type: "arrow" for the two Arrow variants, "dat" otherwise.
func (t FileType) Ext() string {
	switch t {
	case FileTypeArrowFile, FileTypeArrowStream:
		return "arrow"
	default:
		return "dat"
	}
}

// FileInfo describes a registered file blob.
type FileInfo struct {
	Type FileType          `json:"type"`
	Aux  map[string]string `json:"aux,omitempty"`
}

func (FileInfo) infoTag() InfoTag { return TagFile }

// PartitionInfo is a named bucket within a dataset collecting the files and
// tables produced under one logical key. Files and Tables hold the uuids
// of the corresponding Descriptor entries, in insertion order.
type PartitionInfo struct {
	Key    string   `json:"key"`
	Files  []string `json:"files,omitempty"`
	Tables []string `json:"tables,omitempty"`
}

func (PartitionInfo) infoTag() InfoTag { return TagPartition }

// DatasetInfo binds a menu, a configuration, a set of named partitions,
// and a sequence of job runs into one reproducible unit.
type DatasetInfo struct {
	MenuID   string `json:"menu_id"`
	ConfigID string `json:"config_id"`

	// PartitionOrder preserves the order partitions were created in;
	// Partitions maps a partition key to its PartitionInfo descriptor
	// uuid. Together they form an ordered "name -> PartitionInfo"
	// mapping.
	PartitionOrder []string          `json:"partition_order,omitempty"`
	Partitions     map[string]string `json:"partitions,omitempty"`

	// Jobs holds JobInfo descriptor uuids, append-only, index == job id.
	Jobs  []string `json:"jobs,omitempty"`
	Hists []string `json:"hists,omitempty"`
	Logs  []string `json:"logs,omitempty"`

	// StorageLocation is an opaque alternate URL root; the store never
	// reads it back, per spec's Open Question resolution.
	StorageLocation string `json:"storage_location,omitempty"`
}

func (DatasetInfo) infoTag() InfoTag { return TagDataset }

// Descriptor is one catalog entry: provenance and type-specific metadata
// for a single stored byte buffer.
type Descriptor struct {
	UUID       string
	Name       string
	ParentUUID string
	Address    string
	Info       Info
}

// WhichInfo returns the union tag of d's payload, or TagUnknown if d
// carries no payload at all.
func WhichInfo(d Descriptor) InfoTag {
	if d.Info == nil {
		return TagUnknown
	}
	return d.Info.infoTag()
}

type wireDescriptor struct {
	UUID       string          `json:"uuid"`
	Name       string          `json:"name"`
	ParentUUID string          `json:"parent_uuid"`
	Address    string          `json:"address"`
	Tag        InfoTag         `json:"tag"`
	Info       json.RawMessage `json:"info,omitempty"`
}

// MarshalJSON writes the tagged-union envelope: a discriminator field
// alongside the raw encoding of whichever Info variant is set.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	w := wireDescriptor{
		UUID:       d.UUID,
		Name:       d.Name,
		ParentUUID: d.ParentUUID,
		Address:    d.Address,
		Tag:        WhichInfo(d),
	}

	if d.Info != nil {
		raw, err := json.Marshal(d.Info)
		if err != nil {
			return nil, fmt.Errorf("descriptor: marshal info for %s: %w", d.UUID, err)
		}
		w.Info = raw
	}

	return json.Marshal(w)
}

// UnmarshalJSON reads the tagged-union envelope back, dispatching on Tag
// to the registered decoder for that variant.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var w wireDescriptor
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	d.UUID = w.UUID
	d.Name = w.Name
	d.ParentUUID = w.ParentUUID
	d.Address = w.Address
	d.Info = nil

	if w.Tag == TagUnknown {
		return nil
	}

	decode, ok := infoDecoders[w.Tag]
	if !ok {
		return InvalidTagError{Tag: w.Tag}
	}

	info, err := decode(w.Info)
	if err != nil {
		return fmt.Errorf("descriptor: decode %s info for %s: %w", w.Tag, w.UUID, err)
	}
	d.Info = info
	return nil
}

// InvalidTagError is returned when a descriptor's union tag does not
// match any registered Info variant.
type InvalidTagError struct {
	Tag InfoTag
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf("descriptor: invalid info tag %q", string(e.Tag))
}

// infoDecoders is a manifest-schema registry: each Info variant
// registers how to decode itself from the raw "info" field given its
// tag.
var infoDecoders = map[InfoTag]func(json.RawMessage) (Info, error){}

func registerInfo(tag InfoTag, decode func(json.RawMessage) (Info, error)) {
	infoDecoders[tag] = decode
}

func init() {
	registerInfo(TagMenu, func(raw json.RawMessage) (Info, error) {
		var v MenuInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagConfig, func(raw json.RawMessage) (Info, error) {
		var v ConfigInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagDataset, func(raw json.RawMessage) (Info, error) {
		var v DatasetInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagPartition, func(raw json.RawMessage) (Info, error) {
		var v PartitionInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagFile, func(raw json.RawMessage) (Info, error) {
		var v FileInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagTable, func(raw json.RawMessage) (Info, error) {
		var v TableInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagHists, func(raw json.RawMessage) (Info, error) {
		var v HistsInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagLog, func(raw json.RawMessage) (Info, error) {
		var v LogInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	registerInfo(TagJob, func(raw json.RawMessage) (Info, error) {
		var v JobInfo
		err := json.Unmarshal(raw, &v)
		return v, err
	})
}
