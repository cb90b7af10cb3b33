package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// Snapshot is a copy of every object and relationship
type Snapshot struct {
	CreatedAt     time.Time            `msgpack:"created_at"`
	Objects       []store.Object       `msgpack:"objects"`
	Relationships []store.Relationship `msgpack:"relationships"`
}

// Capture reads the whole inventory inside one transaction
func Capture(s store.InventoryStore) (*Snapshot, error) {
	snap := &Snapshot{CreatedAt: time.Now().UTC()}
	err := s.Transaction(func(tx store.InventoryStore) error {
		var err error
		if snap.Objects, err = tx.ListObjects(); err != nil {
			return fmt.Errorf("failed to list objects: %w", err)
		}
		if snap.Relationships, err = tx.ListRelationships(); err != nil {
			return fmt.Errorf("failed to list relationships: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Write encodes snap to w and returns the number of bytes written
func Write(w io.Writer, snap *Snapshot) (int, error) {
	raw, err := msgpack.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	body := make([]byte, lz4.CompressBlockBound(len(raw)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(raw, body, hashTable[:])
	if err != nil {
		return 0, fmt.Errorf("failed to compress data: %w", err)
	}

	flags := uint8(0)
	if n == 0 || n >= len(raw) {
		flags = FlagUncompressed
		body = raw
	} else {
		body = body[:n]
	}

	var buf bytes.Buffer
	if err := WriteHeader(&buf, flags, len(raw)); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	buf.Write(body)

	written, err := w.Write(buf.Bytes())
	if err != nil {
		return written, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return written, nil
}

// Read decodes a snapshot written by Write
func Read(r io.Reader) (*Snapshot, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	raw := body
	if header.Flags&FlagUncompressed == 0 {
		raw = make([]byte, header.RawSize)
		n, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress data: %w", err)
		}
		raw = raw[:n]
	}
	if len(raw) != int(header.RawSize) {
		return nil, fmt.Errorf("snapshot body is %d bytes, header says %d", len(raw), header.RawSize)
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return &snap, nil
}

// WriteFile writes snap to path, replacing any existing file
func WriteFile(path string, snap *Snapshot) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	n, err := Write(file, snap)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	return n, err
}

// ReadFile reads the snapshot at path
func ReadFile(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// IsSnapshotFile reports whether path starts with the snapshot magic
func IsSnapshotFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(file, magic); err != nil {
		return false
	}
	return string(magic) == MagicBytes
}

// Parents maps each child id to its parent ids in ascending order
func (s *Snapshot) Parents() map[int64][]int64 {
	parents := make(map[int64][]int64)
	for _, rel := range s.Relationships {
		parents[rel.ChildID] = append(parents[rel.ChildID], rel.ParentID)
	}
	for _, ids := range parents {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return parents
}
