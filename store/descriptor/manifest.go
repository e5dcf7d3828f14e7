package descriptor

import "time"

// StoreManifest is the on-disk envelope for a whole store: the root
// identity plus the ordered catalog snapshot, written by SaveStore and
// read back by Open.
type StoreManifest struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	ParentUUID string `json:"parent_uuid,omitempty"`

	Algorithm string            `json:"algorithm"`
	Created   time.Time         `json:"created"`
	Aux       map[string]string `json:"aux,omitempty"`

	// Objects is the full catalog, in insertion order. A JSON array
	// preserves that order natively, so no separate index is needed.
	Objects []Descriptor `json:"objects"`
}
