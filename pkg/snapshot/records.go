package snapshot

import (
	"sort"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/inventory"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// Records converts the snapshot into import records in id order.
// Each object keeps its lowest-numbered parent that precedes it. Self links,
// links to a later or missing object, and links to further parents cannot be
// replayed through AddObject and are counted in skipped.
func (s *Snapshot) Records() (records []inventory.Record, skipped int) {
	objects := make([]store.Object, len(s.Objects))
	copy(objects, s.Objects)
	sort.Slice(objects, func(i, j int) bool { return objects[i].ID < objects[j].ID })

	known := make(map[int64]bool, len(objects))
	for _, o := range objects {
		known[o.ID] = true
	}

	parents := s.Parents()
	records = make([]inventory.Record, 0, len(objects))
	for _, o := range objects {
		ref := o.ID
		rec := inventory.Record{Ref: &ref, Serial: o.Serial, Name: o.Name}
		for _, parent := range parents[o.ID] {
			if rec.ParentRef != nil || parent >= o.ID || !known[parent] {
				skipped++
				continue
			}
			p := parent
			rec.ParentRef = &p
		}
		records = append(records, rec)
	}
	return records, skipped
}
