package descriptor

import (
	"fmt"
	"time"
)

// earlier returns a, unless a is the zero value and b is not, favoring
// whichever side actually recorded a creation time.
func earlier(a, b time.Time) time.Time {
	if a.IsZero() {
		return b
	}
	return a
}

// TagMismatchError is returned when two descriptors sharing a catalog key
// carry incompatible union tags and cannot be merged.
type TagMismatchError struct {
	UUID string
	A, B InfoTag
}

func (e TagMismatchError) Error() string {
	return fmt.Sprintf("descriptor: cannot merge %s: tag %s != %s", e.UUID, e.A, e.B)
}

// Merge combines two descriptors known to share a catalog key. Scalar
// fields are left-biased (a wins on conflict); list-valued Info fields
// are concatenated a-then-b; map-valued Aux fields are unioned, again
// left-biased per key on overlap. a and b must carry the same InfoTag.
func Merge(a, b Descriptor) (Descriptor, error) {
	ta, tb := WhichInfo(a), WhichInfo(b)
	if ta != tb {
		return Descriptor{}, TagMismatchError{UUID: a.UUID, A: ta, B: tb}
	}

	out := a
	if out.Name == "" {
		out.Name = b.Name
	}
	if out.ParentUUID == "" {
		out.ParentUUID = b.ParentUUID
	}
	if out.Address == "" {
		out.Address = b.Address
	}

	info, err := mergeInfo(a.Info, b.Info)
	if err != nil {
		return Descriptor{}, err
	}
	out.Info = info
	return out, nil
}

func mergeInfo(a, b Info) (Info, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}

	switch av := a.(type) {
	case DatasetInfo:
		bv, ok := b.(DatasetInfo)
		if !ok {
			return nil, fmt.Errorf("descriptor: mismatched info types in merge")
		}
		return mergeDatasetInfo(av, bv), nil
	case PartitionInfo:
		bv, ok := b.(PartitionInfo)
		if !ok {
			return nil, fmt.Errorf("descriptor: mismatched info types in merge")
		}
		return mergePartitionInfo(av, bv), nil
	case MenuInfo:
		bv := b.(MenuInfo)
		return MenuInfo{Created: earlier(av.Created, bv.Created), Aux: mergeAux(av.Aux, bv.Aux)}, nil
	case ConfigInfo:
		bv := b.(ConfigInfo)
		return ConfigInfo{Created: earlier(av.Created, bv.Created), Aux: mergeAux(av.Aux, bv.Aux)}, nil
	case TableInfo:
		bv := b.(TableInfo)
		return TableInfo{Created: earlier(av.Created, bv.Created), Aux: mergeAux(av.Aux, bv.Aux)}, nil
	case HistsInfo:
		bv := b.(HistsInfo)
		return HistsInfo{Created: earlier(av.Created, bv.Created), Aux: mergeAux(av.Aux, bv.Aux)}, nil
	case LogInfo:
		bv := b.(LogInfo)
		return LogInfo{Created: earlier(av.Created, bv.Created), Aux: mergeAux(av.Aux, bv.Aux)}, nil
	case JobInfo:
		bv := b.(JobInfo)
		return JobInfo{Created: earlier(av.Created, bv.Created), Aux: mergeAux(av.Aux, bv.Aux)}, nil
	case FileInfo:
		bv := b.(FileInfo)
		out := av
		out.Aux = mergeAux(av.Aux, bv.Aux)
		return out, nil
	default:
		return a, nil
	}
}

func mergeDatasetInfo(a, b DatasetInfo) DatasetInfo {
	out := a
	if out.MenuID == "" {
		out.MenuID = b.MenuID
	}
	if out.ConfigID == "" {
		out.ConfigID = b.ConfigID
	}
	if out.StorageLocation == "" {
		out.StorageLocation = b.StorageLocation
	}

	out.Partitions = map[string]string{}
	for k, v := range b.Partitions {
		out.Partitions[k] = v
	}
	for k, v := range a.Partitions {
		out.Partitions[k] = v
	}

	out.PartitionOrder = concatUnique(a.PartitionOrder, b.PartitionOrder)
	out.Jobs = concat(a.Jobs, b.Jobs)
	out.Hists = concat(a.Hists, b.Hists)
	out.Logs = concat(a.Logs, b.Logs)
	return out
}

func mergePartitionInfo(a, b PartitionInfo) PartitionInfo {
	out := a
	out.Files = concat(a.Files, b.Files)
	out.Tables = concat(a.Tables, b.Tables)
	return out
}

func concat(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func concatUnique(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func mergeAux(a, b map[string]string) map[string]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := map[string]string{}
	for k, v := range b {
		out[k] = v
	}
	for k, v := range a {
		out[k] = v
	}
	return out
}
