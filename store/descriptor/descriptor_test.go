package descriptor

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDescriptorRoundTrip(t *testing.T) {
	d := Descriptor{
		UUID:       "abc123",
		Name:       "run-1.part_x.0.arrow",
		ParentUUID: "dataset-1",
		Address:    "hfs:///var/lib/batchvault",
		Info: FileInfo{
			Type: FileTypeArrowFile,
			Aux:  map[string]string{"rows": "10"},
		},
	}

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Descriptor
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.UUID != d.UUID || got.Name != d.Name {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
	fi, ok := got.Info.(FileInfo)
	if !ok {
		t.Fatalf("Info type = %T, want FileInfo", got.Info)
	}
	if fi.Type != FileTypeArrowFile || fi.Aux["rows"] != "10" {
		t.Fatalf("FileInfo mismatch: %+v", fi)
	}
}

func TestWhichInfo(t *testing.T) {
	if tag := WhichInfo(Descriptor{}); tag != TagUnknown {
		t.Fatalf("WhichInfo(empty) = %v, want TagUnknown", tag)
	}
	d := Descriptor{Info: DatasetInfo{MenuID: "m"}}
	if tag := WhichInfo(d); tag != TagDataset {
		t.Fatalf("WhichInfo(dataset) = %v, want TagDataset", tag)
	}
}

func TestUnmarshalUnknownTag(t *testing.T) {
	raw := []byte(`{"uuid":"x","tag":"bogus","info":{}}`)
	var d Descriptor
	if err := json.Unmarshal(raw, &d); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}

func TestMergeDatasetInfoConcatenatesJobs(t *testing.T) {
	a := Descriptor{
		UUID: "dataset-1",
		Info: DatasetInfo{MenuID: "m", ConfigID: "c", Jobs: []string{"job-0"}},
	}
	b := Descriptor{
		UUID: "dataset-1",
		Info: DatasetInfo{MenuID: "m", ConfigID: "c", Jobs: []string{"job-1"}},
	}

	merged, err := Merge(a, b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	di := merged.Info.(DatasetInfo)
	if len(di.Jobs) != 2 || di.Jobs[0] != "job-0" || di.Jobs[1] != "job-1" {
		t.Fatalf("Jobs = %v, want [job-0 job-1]", di.Jobs)
	}
}

func TestMergeTagMismatch(t *testing.T) {
	a := Descriptor{UUID: "x", Info: MenuInfo{Created: time.Now()}}
	b := Descriptor{UUID: "x", Info: ConfigInfo{Created: time.Now()}}

	if _, err := Merge(a, b); err == nil {
		t.Fatalf("expected TagMismatchError")
	}
}

func TestMergePartitionInfoConcatenatesFiles(t *testing.T) {
	a := Descriptor{UUID: "p", Info: PartitionInfo{Key: "x", Files: []string{"f1"}}}
	b := Descriptor{UUID: "p", Info: PartitionInfo{Key: "x", Files: []string{"f2"}}}

	merged, err := Merge(a, b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	pi := merged.Info.(PartitionInfo)
	if len(pi.Files) != 2 {
		t.Fatalf("Files = %v, want 2 entries", pi.Files)
	}
}
