package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	MagicBytes    = "INVS"
	FormatVersion = uint8(1)

	// FlagUncompressed marks a body lz4 could not shrink
	FlagUncompressed = uint8(1)

	// maxBodySize bounds the allocation made from an untrusted header
	maxBodySize = 1 << 30
)

// ErrNotSnapshot is returned when a file does not start with the snapshot magic
var ErrNotSnapshot = errors.New("not a snapshot file")

// FileHeader is the fixed-size prefix of a snapshot file
type FileHeader struct {
	Magic    [4]byte
	Version  uint8
	Flags    uint8
	Reserved [2]byte
	RawSize  uint32
}

// WriteHeader writes a header describing a body of rawSize bytes
func WriteHeader(w io.Writer, flags uint8, rawSize int) error {
	header := FileHeader{
		Magic:   [4]byte{'I', 'N', 'V', 'S'},
		Version: FormatVersion,
		Flags:   flags,
		RawSize: uint32(rawSize),
	}
	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the file header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header.Magic[:]) != MagicBytes {
		return nil, ErrNotSnapshot
	}
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", header.Version)
	}
	if header.RawSize > maxBodySize {
		return nil, fmt.Errorf("snapshot body too large: %d bytes", header.RawSize)
	}
	return &header, nil
}
