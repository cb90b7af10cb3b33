package inventory

import (
	"fmt"
	"strconv"
)

// Record is one object to import.
// Ref names the record within its source so later records can use it as
// ParentRef; it must be positive when set. ParentID refers to an object
// already in the database.
type Record struct {
	Ref       *int64 `yaml:"ref,omitempty"`
	Serial    string `yaml:"serial"`
	Name      string `yaml:"name"`
	ParentRef *int64 `yaml:"parent_ref,omitempty"`
	ParentID  *int64 `yaml:"parent_id,omitempty"`
}

// ImportResult pairs a record with the object created for it
type ImportResult struct {
	Record Record
	Result *Result
}

// Importer replays a growing record list. Each Apply adds only the records
// past those already applied, so the same source can be applied repeatedly.
type Importer struct {
	service *Service
	ids     map[int64]int64
	applied int
}

// NewImporter returns an Importer with nothing applied yet
func (s *Service) NewImporter() *Importer {
	return &Importer{service: s, ids: make(map[int64]int64)}
}

// Applied returns how many records have been added so far
func (im *Importer) Applied() int {
	return im.applied
}

// Import adds records in order, one AddObject call per record.
// It stops at the first failure; records before it stay committed.
func (s *Service) Import(records []Record, onAdded func(ImportResult)) (int, error) {
	return s.NewImporter().Apply(records, onAdded)
}

// Apply adds records[im.Applied():] and returns how many it added.
// A list shorter than what was already applied adds nothing. After a
// failure, the next Apply resumes at the failed record.
func (im *Importer) Apply(records []Record, onAdded func(ImportResult)) (int, error) {
	added := 0
	for i := im.applied; i < len(records); i++ {
		rec := records[i]
		req, err := im.request(rec)
		if err != nil {
			return added, fmt.Errorf("record %d (%s): %w", i+1, rec.Serial, err)
		}

		result, err := im.service.AddObject(req)
		if err != nil {
			return added, fmt.Errorf("record %d (%s): %w", i+1, rec.Serial, err)
		}
		if rec.Ref != nil {
			im.ids[*rec.Ref] = result.ID
		}
		im.applied++
		added++
		if onAdded != nil {
			onAdded(ImportResult{Record: rec, Result: result})
		}
	}
	return added, nil
}

func (im *Importer) request(rec Record) (*Request, error) {
	if rec.ParentRef != nil && rec.ParentID != nil {
		return nil, fmt.Errorf("parent_ref and parent_id are mutually exclusive")
	}
	if rec.Ref != nil {
		if *rec.Ref <= 0 {
			return nil, fmt.Errorf("ref must be a positive integer, got %d", *rec.Ref)
		}
		if _, dup := im.ids[*rec.Ref]; dup {
			return nil, fmt.Errorf("ref %d is already used by an earlier record", *rec.Ref)
		}
	}

	req := &Request{Serial: rec.Serial, Name: rec.Name}
	switch {
	case rec.ParentRef != nil:
		parentID, ok := im.ids[*rec.ParentRef]
		if !ok {
			return nil, fmt.Errorf("parent_ref %d does not name an earlier record", *rec.ParentRef)
		}
		req.Parent = []byte(strconv.FormatInt(parentID, 10))
	case rec.ParentID != nil:
		req.Parent = []byte(strconv.FormatInt(*rec.ParentID, 10))
	}
	return req, nil
}
