package inventory

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// Request is a decoded add-object body.
// Parent holds the raw parent_id token, nil when the field was absent.
type Request struct {
	Serial string
	Name   string
	Parent json.RawMessage
}

// Result describes what AddObject committed.
type Result struct {
	ID       int64
	ParentID *int64
}

// Service writes objects through an InventoryStore
type Service struct {
	store store.InventoryStore
}

// NewService creates a Service backed by s
func NewService(s store.InventoryStore) *Service {
	return &Service{store: s}
}

// ParseRequest decodes an add-object body and checks the required fields.
func ParseRequest(body []byte) (*Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, ErrInvalidJSON
	}

	serial, ok := fields["serial"]
	if !ok || isNull(serial) {
		return nil, ErrMissingFields
	}
	name, ok := fields["name"]
	if !ok || isNull(name) {
		return nil, ErrMissingFields
	}

	req := &Request{}
	if err := json.Unmarshal(serial, &req.Serial); err != nil {
		return nil, ErrFieldType
	}
	if err := json.Unmarshal(name, &req.Name); err != nil {
		return nil, ErrFieldType
	}
	if parent, ok := fields["parent_id"]; ok {
		req.Parent = parent
	}
	return req, nil
}

// AddObject creates the object and, when a parent was given, links it under
// that parent. The parent is validated after the object row is written; any
// rejection rolls the whole transaction back.
func (s *Service) AddObject(req *Request) (*Result, error) {
	result := &Result{}
	err := s.store.Transaction(func(tx store.InventoryStore) error {
		id, err := tx.CreateObject(req.Serial, req.Name)
		if err != nil {
			return err
		}
		result.ID = id

		if req.Parent == nil {
			return nil
		}

		parentID, err := parseParentID(req.Parent)
		if err != nil {
			return err
		}
		exists, err := tx.ObjectExists(parentID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrParentNotFound
		}
		if err := tx.CreateRelationship(parentID, id); err != nil {
			return err
		}
		result.ParentID = &parentID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func parseParentID(raw json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, ErrInvalidParentType
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, ErrInvalidParentType
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}

	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrParentNotInteger
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, ErrParentNotInteger
	}
	return int64(f), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
