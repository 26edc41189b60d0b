package badger

import (
	"encoding/binary"
	"time"
)

// Key prefixes for different data types
const (
	runRecordPrefix = "run"
	runStartPrefix  = "runstart"
)

// makeRunKey generates a key for a run by ID.
// Format: prefix:id
func makeRunKey(id string) []byte {
	return []byte(runRecordPrefix + ":" + id)
}

// makeRunStartKey generates a composite key for the start time index.
// Format: prefix:timestamp:id
func makeRunStartKey(startedAt time.Time, id string) []byte {
	prefix := []byte(runStartPrefix + ":")
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makePartialRunStartKey generates a partial key for start time scans.
// Format: prefix:timestamp
func makePartialRunStartKey(startedAt time.Time) []byte {
	prefix := []byte(runStartPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	return buf
}
