// Package snapshot reads and writes point-in-time copies of the inventory.
//
// A snapshot file is a fixed header followed by a msgpack document
// compressed as a single lz4 block:
//
//	offset  size  field
//	0       4     magic "INVS"
//	4       1     format version
//	5       1     flags (FlagUncompressed when the body is stored raw)
//	6       2     reserved
//	8       4     uncompressed body length, little endian
//	12      ...   body
package snapshot
