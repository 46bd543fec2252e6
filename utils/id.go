package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Namespace for deriving Weaviate object UUIDs from logical record ids.
// Changing it would orphan every previously written object.
var recordNamespace = uuid.MustParse("9f2c1e6a-0d3b-4c8e-9a4f-5b6d7e8f9a0b")

// ChunkID returns the deterministic id of the n-th chunk of a document.
// Re-ingesting the same file with the same chunking parameters reproduces
// the same ids, so the upsert overwrites instead of duplicating.
func ChunkID(basename string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", basename, index)
}

// FileBasename returns the file name without directories or extension.
func FileBasename(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}

var (
	exchangeMu   sync.Mutex
	lastExchange int64
)

// ExchangeID returns "<userID>-<epochMillis>" for one query exchange. Two
// requests landing in the same millisecond would collide, so the timestamp
// is bumped monotonically under a lock.
func ExchangeID(userID string, t time.Time) string {
	exchangeMu.Lock()
	defer exchangeMu.Unlock()

	millis := t.UnixMilli()
	if millis <= lastExchange {
		millis = lastExchange + 1
	}
	lastExchange = millis
	return fmt.Sprintf("%s-%d", userID, millis)
}

// ObjectUUID maps a logical record id onto the UUID Weaviate requires as an
// object id. SHA1-namespace UUIDs keep the mapping deterministic, which is
// what makes re-ingestion an overwrite.
func ObjectUUID(id string) string {
	return uuid.NewSHA1(recordNamespace, []byte(id)).String()
}
